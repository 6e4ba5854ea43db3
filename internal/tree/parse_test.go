package tree

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// ignoreLines keeps comparisons focused on shape rather than source position.
var ignoreLines = cmp.Options{
	cmpopts.IgnoreFields(Leaf{}, "Line"),
	cmpopts.IgnoreFields(Parameterized{}, "Line"),
	cmpopts.IgnoreFields(Group{}, "Line"),
	cmpopts.IgnoreFields(Sequence{}, "Line"),
	cmpopts.IgnoreFields(Unrecognized{}, "Line"),
	cmpopts.EquateEmpty(),
}

func mustParse(t *testing.T, src string) Node {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	n, err := Parse(&doc)
	require.NoError(t, err)
	return n
}

func TestParseClassifiesValues(t *testing.T) {
	got := mustParse(t, `
git:
  check: git --version
  command: brew install git
vscode_extensions:
  command: code --install-extension
  items: [ms-python.python, golang.go]
languages:
  python:
    check: python3 --version
    command: brew install python
`)

	want := Group{Entries: []Entry{
		{Key: "git", Node: Leaf{Check: "git --version", Command: "brew install git"}},
		{Key: "vscode_extensions", Node: Parameterized{
			Command: "code --install-extension",
			Items:   []string{"ms-python.python", "golang.go"},
		}},
		{Key: "languages", Node: Group{Entries: []Entry{
			{Key: "python", Node: Leaf{Check: "python3 --version", Command: "brew install python"}},
		}}},
	}}

	if diff := cmp.Diff(want, got, ignoreLines); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKeepsDocumentOrder(t *testing.T) {
	got := mustParse(t, `
zeta: {check: z, command: z}
alpha: {check: a, command: a}
mid: {check: m, command: m}
`)
	g, ok := got.(Group)
	require.True(t, ok)

	var keys []string
	for _, e := range g.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

func TestParseLeafWinsOverParameterized(t *testing.T) {
	got := mustParse(t, `
tool:
  check: c
  command: i
  items: [x]
  extensions:
    command: ext
    items: [e1]
`)
	g := got.(Group)
	require.Len(t, g.Entries, 1)
	assert.Equal(t, Leaf{Check: "c", Command: "i", Line: g.Entries[0].Node.(Leaf).Line}, g.Entries[0].Node)
}

func TestParseCheckWithoutCommandIsGroup(t *testing.T) {
	got := mustParse(t, `
half:
  check: which foo
`)
	want := Group{Entries: []Entry{
		{Key: "half", Node: Group{Entries: []Entry{
			{Key: "check", Node: Unrecognized{Value: "which foo", Reason: "not a descriptor or group"}},
		}}},
	}}
	if diff := cmp.Diff(want, got, ignoreLines); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRootIsAlwaysContainer(t *testing.T) {
	// A leaf-looking mapping at the root is iterated, not installed.
	got := mustParse(t, `{check: c, command: i}`)
	g, ok := got.(Group)
	require.True(t, ok)
	require.Len(t, g.Entries, 2)
	assert.IsType(t, Unrecognized{}, g.Entries[0].Node)
}

func TestParseSequences(t *testing.T) {
	got := mustParse(t, `
- a: {check: c1, command: i1}
- b: {check: c2, command: i2}
- just a string
`)
	want := Sequence{Elements: []Node{
		Group{Entries: []Entry{{Key: "a", Node: Leaf{Check: "c1", Command: "i1"}}}},
		Group{Entries: []Entry{{Key: "b", Node: Leaf{Check: "c2", Command: "i2"}}}},
		Unrecognized{Value: "just a string", Reason: "not a descriptor or group"},
	}}
	if diff := cmp.Diff(want, got, ignoreLines); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMalformedDescriptors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason string
	}{
		{"items not a list", "x: {command: c, items: one}", "items must be a list"},
		{"nested items", "x: {command: c, items: [[a]]}", "items must be a list of strings"},
		{"non-string command", "x: {check: c, command: [a]}", "check and command must both be strings"},
		{"null check", "x: {check: null, command: i}", "check and command must both be strings"},
		{"empty value", "x:", "empty value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.src).(Group)
			require.Len(t, g.Entries, 1)
			u, ok := g.Entries[0].Node.(Unrecognized)
			require.True(t, ok, "got %T", g.Entries[0].Node)
			assert.Equal(t, tt.reason, u.Reason)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	assert.Equal(t, Group{}, mustParse(t, ``))

	n, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Group{}, n)

	g := mustParse(t, `{}`).(Group)
	assert.Empty(t, g.Entries)
}

func TestParseAliasesAndMerge(t *testing.T) {
	got := mustParse(t, `
base: &brew
  check: brew --version
  command: /bin/bash install.sh
again: *brew
merged:
  <<: *brew
  command: override
common: &common
  brew: {check: b, command: ib}
  git: {check: g, command: ig}
macos:
  node: {check: n, command: in}
  <<: *common
  git: {check: g2, command: ig2}
`)
	common := Group{Entries: []Entry{
		{Key: "brew", Node: Leaf{Check: "b", Command: "ib"}},
		{Key: "git", Node: Leaf{Check: "g", Command: "ig"}},
	}}
	want := Group{Entries: []Entry{
		{Key: "base", Node: Leaf{Check: "brew --version", Command: "/bin/bash install.sh"}},
		{Key: "again", Node: Leaf{Check: "brew --version", Command: "/bin/bash install.sh"}},
		{Key: "merged", Node: Leaf{Check: "brew --version", Command: "override"}},
		{Key: "common", Node: common},
		// Merged keys come first; git keeps its merged slot with the local value.
		{Key: "macos", Node: Group{Entries: []Entry{
			{Key: "brew", Node: Leaf{Check: "b", Command: "ib"}},
			{Key: "git", Node: Leaf{Check: "g2", Command: "ig2"}},
			{Key: "node", Node: Leaf{Check: "n", Command: "in"}},
		}}},
	}}
	if diff := cmp.Diff(want, got, ignoreLines); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMergeSourcesPrecedence(t *testing.T) {
	got := mustParse(t, `
a: &a {x: {check: a, command: a}}
b: &b {x: {check: b, command: b}, y: {check: b, command: b}}
both:
  <<: [*a, *b]
`)
	g := got.(Group)
	require.Len(t, g.Entries, 3)
	want := Group{Entries: []Entry{
		{Key: "x", Node: Leaf{Check: "a", Command: "a"}},
		{Key: "y", Node: Leaf{Check: "b", Command: "b"}},
	}}
	if diff := cmp.Diff(want, g.Entries[2].Node, ignoreLines); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

// nestedAliases builds a document whose every level lists the previous
// level's alias ten times, so expansion grows tenfold per level.
func nestedAliases(levels int, merge bool) string {
	var b strings.Builder
	if merge {
		b.WriteString("l0: &l0 {a: {check: c, command: i}}\n")
	} else {
		b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	}
	for i := 1; i <= levels; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*l%d, ", i-1), 10), ", ")
		if merge {
			fmt.Fprintf(&b, "l%d: &l%d {<<: [%s], k%d: {check: c, command: i}}\n", i, i, refs, i)
		} else {
			fmt.Fprintf(&b, "l%d: &l%d [%s]\n", i, i, refs)
		}
	}
	return b.String()
}

func TestParseBoundsAliasExpansion(t *testing.T) {
	for _, merge := range []bool{false, true} {
		var doc yaml.Node
		require.NoError(t, yaml.Unmarshal([]byte(nestedAliases(6, merge)), &doc))
		_, err := Parse(&doc)
		require.ErrorIs(t, err, ErrTooLarge, "merge=%v", merge)
	}

	// Modest reuse stays well under the limit.
	n := mustParse(t, nestedAliases(2, false))
	assert.Equal(t, 3, len(n.(Group).Entries))
}

func TestParseDuplicateKey(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("group:\n  a: x\n  a: y\n"), &doc))
	_, err := Parse(&doc)
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "group")
}

func TestParseNonScalarKey(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("? [a, b]\n: value\n"), &doc))
	_, err := Parse(&doc)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestExtendDoesNotShareBacking(t *testing.T) {
	base := make([]string, 1, 8)
	base[0] = "root"
	a := Extend(base, "a")
	b := Extend(base, "b")
	assert.Equal(t, []string{"root", "a"}, a)
	assert.Equal(t, []string{"root", "b"}, b)
	assert.Equal(t, "root > a", Label(a))
}

func TestCount(t *testing.T) {
	n := mustParse(t, `
a: {check: c, command: i}
b: {command: c, items: [x, y, z]}
c:
  - d: {check: c, command: i}
  - bare
`)
	assert.Equal(t, Stats{Leaves: 2, Parameterized: 1, Items: 3, Groups: 2, Unrecognized: 1}, Count(n))
}
