package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(id string) Snapshot {
	return Snapshot{ID: id, width: 1, height: 1, pix: make([]uint8, 4)}
}

func TestHistoryRecordClearsRedo(t *testing.T) {
	h := NewHistory(4)
	h.Record(snap("a"))
	h.Record(snap("b"))

	prev, ok := h.Undo(snap("current"))
	require.True(t, ok)
	assert.Equal(t, "b", prev.ID)
	assert.True(t, h.CanRedo())

	h.Record(snap("c"))
	assert.False(t, h.CanRedo())
	undo, redo := h.Len()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 0, redo)
}

func TestHistoryUndoRedoTransfer(t *testing.T) {
	h := NewHistory(4)
	h.Record(snap("before"))

	prev, ok := h.Undo(snap("after"))
	require.True(t, ok)
	assert.Equal(t, "before", prev.ID)

	next, ok := h.Redo(snap("before-again"))
	require.True(t, ok)
	assert.Equal(t, "after", next.ID)

	prev, ok = h.Undo(snap("after-again"))
	require.True(t, ok)
	assert.Equal(t, "before-again", prev.ID)
}

func TestHistoryEmptyStacks(t *testing.T) {
	h := NewHistory(2)
	_, ok := h.Undo(snap("x"))
	assert.False(t, ok)
	_, ok = h.Redo(snap("x"))
	assert.False(t, ok)
	undo, redo := h.Len()
	assert.Zero(t, undo)
	assert.Zero(t, redo)
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		h.Record(snap(id))
	}
	undo, _ := h.Len()
	require.Equal(t, 3, undo)

	var got []string
	for h.CanUndo() {
		s, _ := h.Undo(snap("cur"))
		got = append(got, s.ID)
	}
	assert.Equal(t, []string{"5", "4", "3"}, got)

	_, redo := h.Len()
	assert.Equal(t, 3, redo)
}

func TestHistoryDefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultHistoryLimit, NewHistory(0).Limit())
	assert.Equal(t, DefaultHistoryLimit, NewHistory(-5).Limit())
	assert.Equal(t, 7, NewHistory(7).Limit())
}
