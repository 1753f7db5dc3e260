package tree

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/scantree/scantree/internal/nodepath"
)

// DescriptorFile is the name of the tree descriptor at the campaign root.
const DescriptorFile = "tree.json"

// Descriptor is the persisted logical form of a campaign tree: every node
// with its path, generation and override configuration, independent of the
// filesystem layout. It allows auditing and reconstruction without walking
// directories.
type Descriptor struct {
	Campaign  string       `json:"campaign"`
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Nodes     []NodeRecord `json:"nodes"`
}

// NodeRecord is one node in the descriptor. Records appear in depth-first
// traversal order, so a parent always precedes its children.
type NodeRecord struct {
	Path      string `json:"path"`
	Gen       int    `json:"gen"`
	Overrides Config `json:"overrides,omitempty"`
}

// NewDescriptor captures the logical content of a tree under a fresh
// campaign ID.
func NewDescriptor(t *Tree, campaign string) *Descriptor {
	d := &Descriptor{
		Campaign:  campaign,
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	_ = t.Walk(func(n *Node) error {
		d.Nodes = append(d.Nodes, NodeRecord{
			Path:      n.Path.String(),
			Gen:       n.Gen,
			Overrides: n.Overrides,
		})
		return nil
	})
	return d
}

// Tree reconstructs the full tree from the descriptor. Resolved
// configurations are recomputed by the same merge the builder used, so a
// round-tripped tree is indistinguishable from the original.
func (d *Descriptor) Tree() (*Tree, error) {
	if len(d.Nodes) == 0 || d.Nodes[0].Path != "" {
		return nil, integrityErrorf("", "descriptor has no root record")
	}
	t := New(d.Nodes[0].Overrides)
	for _, rec := range d.Nodes[1:] {
		p, err := nodepath.Parse(rec.Path)
		if err != nil {
			return nil, integrityErrorf(rec.Path, "bad path in descriptor: %v", err)
		}
		if _, err := t.Add(p.Parent(), p.Key(), rec.Overrides); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WriteFile persists the descriptor as indented JSON.
func (d *Descriptor) WriteFile(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tree descriptor: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing tree descriptor: %w", err)
	}
	return nil
}

// ReadDescriptor loads a descriptor previously written by WriteFile.
func ReadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree descriptor: %w", err)
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decoding tree descriptor: %w", err)
	}
	return &d, nil
}
