package tree

import (
	"github.com/scantree/scantree/internal/nodepath"
)

// Node is one element of the campaign tree. Nodes are created through
// Tree.Add and addressed by path; they hold no parent or child pointers.
type Node struct {
	// Path addresses the node from the root.
	Path nodepath.Path
	// Gen is the generation index: 0 for the root, 1 for the base node,
	// 2 for scan leaves.
	Gen int
	// Overrides is the configuration this node contributes on top of its
	// ancestors.
	Overrides Config
	// Resolved is the fully merged configuration: the deep merge of every
	// ancestor's overrides with this node's own. It is computed once when
	// the node is added.
	Resolved Config

	// childKeys preserves insertion order for deterministic traversal.
	childKeys []string
}

// Key returns the node's child key within its parent ("" for the root).
func (n *Node) Key() string {
	return n.Path.Key()
}

// ChildKeys returns the node's child keys in insertion order.
func (n *Node) ChildKeys() []string {
	out := make([]string, len(n.childKeys))
	copy(out, n.childKeys)
	return out
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.childKeys) == 0
}

// Tree is an arena of nodes indexed by their canonical path string. The
// root always exists.
type Tree struct {
	nodes map[string]*Node
}

// New creates a tree containing only the root node with the given
// root-level configuration (campaign-wide settings such as the setup-env
// script path).
func New(rootConfig Config) *Tree {
	root := &Node{
		Path:      nodepath.Root(),
		Gen:       0,
		Overrides: rootConfig.Copy(),
		Resolved:  rootConfig.Copy(),
	}
	return &Tree{nodes: map[string]*Node{"": root}}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.nodes[""]
}

// Node looks up a node by path.
func (t *Tree) Node(p nodepath.Path) (*Node, bool) {
	n, ok := t.nodes[p.String()]
	return n, ok
}

// Len returns the number of nodes including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Add inserts a child under parent with the given key and override
// configuration, resolving it against the parent immediately.
//
// Inserting the same key twice is tolerated when the overrides are deeply
// equal (duplicate scan points deduplicate by key); divergent content
// under an existing key is an integrity error. The parent must exist: a
// child is never created before its ancestor chain.
func (t *Tree) Add(parent nodepath.Path, key string, overrides Config) (*Node, error) {
	parentNode, ok := t.nodes[parent.String()]
	if !ok {
		return nil, integrityErrorf(parent.String(), "parent does not exist")
	}

	childPath := parent.Child(key)
	if existing, ok := t.nodes[childPath.String()]; ok {
		if existing.Overrides.Equal(overrides) {
			return existing, nil
		}
		return nil, integrityErrorf(childPath.String(), "key collision with divergent content")
	}

	node := &Node{
		Path:      childPath,
		Gen:       parentNode.Gen + 1,
		Overrides: overrides.Copy(),
		Resolved:  Merge(parentNode.Resolved, overrides),
	}
	t.nodes[childPath.String()] = node
	parentNode.childKeys = append(parentNode.childKeys, key)
	return node, nil
}

// Walk traverses the tree depth-first, parents before children, children
// in insertion order. Traversal stops at the first error.
func (t *Tree) Walk(fn func(*Node) error) error {
	return t.walk(t.Root(), fn)
}

func (t *Tree) walk(n *Node, fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, key := range n.childKeys {
		child := t.nodes[n.Path.Child(key).String()]
		if err := t.walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns the leaf nodes in traversal order.
func (t *Tree) Leaves() []*Node {
	var leaves []*Node
	_ = t.Walk(func(n *Node) error {
		if n.IsLeaf() && !n.Path.IsRoot() {
			leaves = append(leaves, n)
		}
		return nil
	})
	return leaves
}
