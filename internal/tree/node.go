// Package tree turns the raw YAML subtree of one platform into a closed set
// of node types the installer can walk without re-inspecting maps.
//
// Every value in the document becomes exactly one of:
//
//   - Leaf: a mapping with both "check" and "command"
//   - Parameterized: a mapping with "command" and a list of "items"
//   - Group: any other mapping, whose entries are walked in document order
//   - Sequence: a list whose elements share the parent's path
//   - Unrecognized: anything else (bare scalars, empty values, malformed
//     descriptors); walked as a reported no-op
package tree

import "strings"

// Separator joins path segments in human-readable labels.
const Separator = " > "

// Node is one classified value of the config tree.
// The set of implementations is closed to this package.
type Node interface {
	isNode()
}

// Leaf is one installable unit: a presence check plus an install command.
type Leaf struct {
	Check   string
	Command string
	Line    int
}

// Parameterized is a command template applied to each item in turn.
// Items are appended with a single space and are not shell-escaped.
type Parameterized struct {
	Command string
	Items   []string
	Line    int
}

// Group is a named mapping whose entries are walked in document order.
type Group struct {
	Entries []Entry
	Line    int
}

// Entry is one key/value pair of a Group.
type Entry struct {
	Key  string
	Node Node
}

// Sequence is a list of nodes. Elements do not extend the path label.
type Sequence struct {
	Elements []Node
	Line     int
}

// Unrecognized is a value that matched no other shape.
type Unrecognized struct {
	Value  string
	Reason string
	Line   int
}

func (Leaf) isNode()          {}
func (Parameterized) isNode() {}
func (Group) isNode()         {}
func (Sequence) isNode()      {}
func (Unrecognized) isNode()  {}

// Expand returns the concrete command text for one item.
func (p Parameterized) Expand(item string) string {
	return p.Command + " " + item
}

// Label joins a path into its breadcrumb form, e.g. "A > B > C".
func Label(path []string) string {
	return strings.Join(path, Separator)
}

// Extend returns a new path with key appended. The input slice is never
// written to, so sibling descents cannot observe each other's segments.
func Extend(path []string, key string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, key)
}

// Stats counts the installable units under a node.
type Stats struct {
	Leaves        int
	Parameterized int
	Items         int
	Groups        int
	Unrecognized  int
}

// Count walks n and tallies each node kind.
func Count(n Node) Stats {
	var s Stats
	count(n, &s)
	return s
}

func count(n Node, s *Stats) {
	switch v := n.(type) {
	case Leaf:
		s.Leaves++
	case Parameterized:
		s.Parameterized++
		s.Items += len(v.Items)
	case Group:
		s.Groups++
		for _, e := range v.Entries {
			count(e.Node, s)
		}
	case Sequence:
		for _, el := range v.Elements {
			count(el, s)
		}
	case Unrecognized:
		s.Unrecognized++
	}
}
