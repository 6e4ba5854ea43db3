package tree

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Descriptor keys recognised inside a mapping value.
const (
	KeyCheck   = "check"
	KeyCommand = "command"
	KeyItems   = "items"
)

// maxDepth bounds recursion through aliases that refer back to an ancestor.
const maxDepth = 256

// maxNodes bounds the work done expanding aliases. yaml.v3 only applies its
// alias-ratio guard when decoding into Go values, not into a yaml.Node.
const maxNodes = 100_000

var (
	// ErrDuplicateKey is returned when a mapping repeats a key.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrInvalidKey is returned for non-scalar mapping keys.
	ErrInvalidKey = errors.New("mapping keys must be strings")
	// ErrTooDeep is returned when nesting exceeds maxDepth.
	ErrTooDeep = errors.New("config tree nested too deeply")
	// ErrTooLarge is returned when alias expansion exceeds maxNodes.
	ErrTooLarge = errors.New("config tree too large after alias expansion")
)

type keyValue struct {
	key   string
	value *yaml.Node
	line  int
}

// parser counts visited nodes so alias fan-out cannot blow up the tree.
type parser struct {
	nodes int
	limit int
}

func (p *parser) visit(n *yaml.Node) error {
	p.nodes++
	if p.nodes > p.limit {
		return fmt.Errorf("%w: more than %d nodes (line %d)", ErrTooLarge, p.limit, n.Line)
	}
	return nil
}

// Parse classifies the subtree rooted at n. The root itself is a container:
// a mapping root is always a Group (even if it happens to carry check and
// command keys) and a list root is a Sequence whose elements are containers
// as well. An empty or null root yields an empty Group.
func Parse(n *yaml.Node) (Node, error) {
	if n == nil {
		return Group{}, nil
	}
	n = resolve(n)
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return Group{}, nil
		}
		n = resolve(n.Content[0])
	}
	if isNull(n) {
		return Group{Line: n.Line}, nil
	}
	p := &parser{limit: maxNodes}
	return p.parseContainer(n, 0)
}

// parseContainer handles a node reached by iteration rather than by key.
func (p *parser) parseContainer(n *yaml.Node, depth int) (Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w (line %d)", ErrTooDeep, n.Line)
	}
	n = resolve(n)
	if err := p.visit(n); err != nil {
		return nil, err
	}
	switch n.Kind {
	case yaml.MappingNode:
		return p.parseGroup(n, depth)
	case yaml.SequenceNode:
		seq := Sequence{Line: n.Line, Elements: make([]Node, 0, len(n.Content))}
		for _, el := range n.Content {
			child, err := p.parseContainer(el, depth+1)
			if err != nil {
				return nil, err
			}
			seq.Elements = append(seq.Elements, child)
		}
		return seq, nil
	default:
		return unrecognized(n), nil
	}
}

// parseValue classifies the value stored under a mapping key.
func (p *parser) parseValue(n *yaml.Node, depth int) (Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w (line %d)", ErrTooDeep, n.Line)
	}
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return p.parseContainer(n, depth)
	}
	if err := p.visit(n); err != nil {
		return nil, err
	}

	kvs, err := p.entries(n)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]*yaml.Node, len(kvs))
	for _, kv := range kvs {
		fields[kv.key] = resolve(kv.value)
	}

	check, hasCheck := fields[KeyCheck]
	command, hasCommand := fields[KeyCommand]
	items, hasItems := fields[KeyItems]

	switch {
	case hasCheck && hasCommand:
		if !isString(check) || !isString(command) {
			return Unrecognized{Line: n.Line, Reason: "check and command must both be strings"}, nil
		}
		return Leaf{Check: check.Value, Command: command.Value, Line: n.Line}, nil

	case hasCommand && hasItems:
		if !isString(command) {
			return Unrecognized{Line: n.Line, Reason: "command must be a string"}, nil
		}
		list, reason := stringList(items)
		if reason != "" {
			return Unrecognized{Line: items.Line, Reason: reason}, nil
		}
		return Parameterized{Command: command.Value, Items: list, Line: n.Line}, nil
	}

	return p.groupFrom(n, kvs, depth)
}

func (p *parser) parseGroup(n *yaml.Node, depth int) (Node, error) {
	kvs, err := p.entries(n)
	if err != nil {
		return nil, err
	}
	return p.groupFrom(n, kvs, depth)
}

func (p *parser) groupFrom(n *yaml.Node, kvs []keyValue, depth int) (Node, error) {
	g := Group{Line: n.Line, Entries: make([]Entry, 0, len(kvs))}
	for _, kv := range kvs {
		child, err := p.parseValue(kv.value, depth+1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kv.key, err)
		}
		g.Entries = append(g.Entries, Entry{Key: kv.key, Node: child})
	}
	return g, nil
}

// entries lists a mapping's pairs. Keys pulled in through merge keys ("<<")
// come first, in the order of their sources; the mapping's own keys follow
// in document order. A key that is both merged and written out keeps the
// merged position and takes the written-out value.
func (p *parser) entries(n *yaml.Node) ([]keyValue, error) {
	var explicit, merged []keyValue
	seen := make(map[string]int)

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolve(n.Content[i]), n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w (line %d)", ErrInvalidKey, k.Line)
		}
		if err := p.visit(k); err != nil {
			return nil, err
		}
		if k.Tag == "!!merge" {
			m, err := p.mergeSources(v)
			if err != nil {
				return nil, err
			}
			merged = append(merged, m...)
			continue
		}
		if line, dup := seen[k.Value]; dup {
			return nil, fmt.Errorf("%w %q (lines %d and %d)", ErrDuplicateKey, k.Value, line, k.Line)
		}
		seen[k.Value] = k.Line
		explicit = append(explicit, keyValue{key: k.Value, value: v, line: k.Line})
	}

	out := make([]keyValue, 0, len(merged)+len(explicit))
	pos := make(map[string]int, len(merged)+len(explicit))
	for _, kv := range merged {
		// Earlier merge sources take precedence over later ones.
		if _, dup := pos[kv.key]; dup {
			continue
		}
		pos[kv.key] = len(out)
		out = append(out, kv)
	}
	for _, kv := range explicit {
		if i, dup := pos[kv.key]; dup {
			out[i].value = kv.value
			out[i].line = kv.line
			continue
		}
		pos[kv.key] = len(out)
		out = append(out, kv)
	}
	return out, nil
}

func (p *parser) mergeSources(v *yaml.Node) ([]keyValue, error) {
	v = resolve(v)
	switch v.Kind {
	case yaml.MappingNode:
		return p.entries(v)
	case yaml.SequenceNode:
		var out []keyValue
		for _, el := range v.Content {
			kvs, err := p.mergeSources(el)
			if err != nil {
				return nil, err
			}
			out = append(out, kvs...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("merge value must be a mapping (line %d)", v.Line)
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == 0 || n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag != "!!null"
}

func stringList(n *yaml.Node) ([]string, string) {
	if n.Kind != yaml.SequenceNode {
		return nil, "items must be a list"
	}
	list := make([]string, 0, len(n.Content))
	for _, el := range n.Content {
		el = resolve(el)
		if !isString(el) {
			return nil, "items must be a list of strings"
		}
		list = append(list, el.Value)
	}
	return list, ""
}

func unrecognized(n *yaml.Node) Unrecognized {
	if isNull(n) {
		return Unrecognized{Line: n.Line, Reason: "empty value"}
	}
	return Unrecognized{Value: n.Value, Line: n.Line, Reason: "not a descriptor or group"}
}
