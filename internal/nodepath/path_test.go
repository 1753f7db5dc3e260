package nodepath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		segments  []string
	}{
		{
			name:     "root",
			raw:      "",
			segments: []string{},
		},
		{
			name:     "single segment",
			raw:      "base_collider",
			segments: []string{"base_collider"},
		},
		{
			name:     "leaf path",
			raw:      "base_collider/scan_0003",
			segments: []string{"base_collider", "scan_0003"},
		},
		{
			name:      "error - empty segment",
			raw:       "a//b",
			expectErr: true,
		},
		{
			name:      "error - parent traversal",
			raw:       "a/../b",
			expectErr: true,
		},
		{
			name:      "error - invalid characters",
			raw:       "a/b c",
			expectErr: true,
		},
		{
			name:      "error - trailing separator",
			raw:       "a/",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.segments, p.Segments())
			assert.Equal(t, tc.raw, p.String())
		})
	}
}

func TestChildParentKey(t *testing.T) {
	p := Root().Child("base_collider").Child("scan_0001")

	assert.Equal(t, "base_collider/scan_0001", p.String())
	assert.Equal(t, "scan_0001", p.Key())
	assert.Equal(t, 2, p.Depth())
	assert.Equal(t, "base_collider", p.Parent().String())
	assert.True(t, p.Parent().Parent().IsRoot())
	assert.True(t, Root().Parent().IsRoot())
}

func TestFSPath(t *testing.T) {
	p := New("base_collider", "scan_0001")
	expected := filepath.Join("scans", "study", "base_collider", "scan_0001")
	assert.Equal(t, expected, p.FSPath(filepath.Join("scans", "study")))
	assert.Equal(t, "root", Root().FSPath("root"))
}

func TestEqual(t *testing.T) {
	assert.True(t, New("a", "b").Equal(New("a", "b")))
	assert.False(t, New("a", "b").Equal(New("a")))
	assert.False(t, New("a", "b").Equal(New("a", "c")))
	assert.True(t, Root().Equal(Root()))
}
