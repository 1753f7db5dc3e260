package nodepath

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Separator joins child keys into a path string. It deliberately matches
// the filesystem separator used by the materializer on POSIX systems.
const Separator = "/"

// segmentRegex validates a single child key, e.g. `base_collider` or `scan_0042`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Path is the canonical identifier for a node: the ordered chain of child
// keys from the root. The zero value addresses the root itself.
type Path struct {
	segments []string
}

// Root returns the path addressing the tree root.
func Root() Path {
	return Path{}
}

// New builds a path from the given child keys. It panics on an invalid key;
// use Parse for untrusted input.
func New(keys ...string) Path {
	p, err := fromSegments(keys)
	if err != nil {
		panic(fmt.Sprintf("nodepath.New: %v", err))
	}
	return p
}

// Parse validates and parses a canonical path string. An empty string
// addresses the root.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return Root(), nil
	}
	return fromSegments(strings.Split(raw, Separator))
}

func fromSegments(keys []string) (Path, error) {
	segments := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" {
			return Path{}, fmt.Errorf("path contains empty segment")
		}
		if !segmentRegex.MatchString(key) {
			return Path{}, fmt.Errorf("invalid path segment: %q", key)
		}
		if key == "." || key == ".." {
			return Path{}, fmt.Errorf("invalid path segment: %q", key)
		}
		segments = append(segments, key)
	}
	return Path{segments: segments}, nil
}

// String serializes the path into its canonical string form. The root
// serializes to the empty string.
func (p Path) String() string {
	return strings.Join(p.segments, Separator)
}

// IsRoot reports whether the path addresses the tree root.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Child returns the path of the child with the given key.
func (p Path) Child(key string) Path {
	segments := make([]string, 0, len(p.segments)+1)
	segments = append(segments, p.segments...)
	return Path{segments: append(segments, key)}
}

// Parent returns the parent path. The root's parent is the root.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return p
	}
	return Path{segments: p.segments[:len(p.segments)-1]}
}

// Key returns the final child key, or "" for the root.
func (p Path) Key() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Depth returns the generation index: 0 for the root, 1 for its children.
func (p Path) Depth() int {
	return len(p.segments)
}

// Segments returns a copy of the child-key chain.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// FSPath resolves the path against a filesystem root directory.
func (p Path) FSPath(root string) string {
	return filepath.Join(append([]string{root}, p.segments...)...)
}

// Equal reports whether two paths address the same node.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, s := range p.segments {
		if other.segments[i] != s {
			return false
		}
	}
	return true
}
