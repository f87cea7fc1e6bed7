package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryBindAndLookup(t *testing.T) {
	t.Parallel()
	d := NewConnectionDirectory()
	c := &recordingConn{}

	_, ok := d.Lookup("alice")
	assert.False(t, ok)

	d.Bind("alice", c)
	got, ok := d.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, c, got.(*recordingConn))
	assert.Equal(t, 1, d.Len())

	d.Unbind("alice")
	_, ok = d.Lookup("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, d.Len())
}

func TestDirectoryRebindReplaces(t *testing.T) {
	t.Parallel()
	d := NewConnectionDirectory()
	old := &recordingConn{}
	fresh := &recordingConn{}

	d.Bind("alice", old)
	d.Bind("alice", fresh)

	got, ok := d.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, fresh, got.(*recordingConn))
	assert.Equal(t, 1, d.Len())

	// Only the live connection counts as bound.
	assert.True(t, d.Bound("alice", fresh))
	assert.False(t, d.Bound("alice", old))
	assert.False(t, d.Bound("nobody", fresh))
}
