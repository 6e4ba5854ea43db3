package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the top-level shape of an installation config file:
//
//	installation:
//	  tree:
//	    windows: {...}
//	    macos: {...}
//
// The tree is kept as a raw yaml.Node so the per-platform mappings retain
// their document order.
type Document struct {
	Installation Installation `yaml:"installation"`

	// Path is the file the document was loaded from.
	Path string `yaml:"-"`
}

// Installation holds the platform trees.
type Installation struct {
	Tree yaml.Node `yaml:"tree"`
}

// Platforms lists the platform keys present under installation.tree, in
// document order.
func (d *Document) Platforms() []string {
	tree := resolve(&d.Installation.Tree)
	if tree.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(tree.Content)/2)
	for i := 0; i+1 < len(tree.Content); i += 2 {
		keys = append(keys, tree.Content[i].Value)
	}
	return keys
}

// Subtree returns the node at installation.tree.<osKey>. A key that is
// present but empty yields an empty mapping.
func (d *Document) Subtree(osKey string) (*yaml.Node, error) {
	tree := resolve(&d.Installation.Tree)
	if tree.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s has no installation.tree mapping", ErrMissingOSSubtree, d.name())
	}
	for i := 0; i+1 < len(tree.Content); i += 2 {
		if tree.Content[i].Value != osKey {
			continue
		}
		n := resolve(tree.Content[i+1])
		if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
			return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: n.Line, Column: n.Column}, nil
		}
		return n, nil
	}
	return nil, fmt.Errorf("%w: no installation.tree.%s in %s", ErrMissingOSSubtree, osKey, d.name())
}

func (d *Document) name() string {
	if d.Path == "" {
		return "config"
	}
	return d.Path
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
