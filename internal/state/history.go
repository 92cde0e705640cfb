package state

import "image"

// Snapshot is an immutable copy of the raster at one point in time.
type Snapshot struct {
	ID     string
	width  int
	height int
	pix    []uint8
}

func (s Snapshot) Size() (int, int) {
	return s.width, s.height
}

// Image returns a copy of the snapshot's pixels.
func (s Snapshot) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.pix)
	return img
}

// DefaultHistoryLimit bounds each history stack when no limit is configured.
const DefaultHistoryLimit = 64

// History keeps the undo and redo stacks, most recent entry last.
// Both stacks hold at most limit snapshots; the oldest is evicted first.
type History struct {
	undo  []Snapshot
	redo  []Snapshot
	limit int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record archives the state before an edit and invalidates redo.
func (h *History) Record(s Snapshot) {
	h.undo = push(h.undo, s, h.limit)
	h.redo = nil
}

// Undo pops the most recent past state and stores current for redo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	prev, ok := pop(&h.undo)
	if !ok {
		return Snapshot{}, false
	}
	h.redo = push(h.redo, current, h.limit)
	return prev, true
}

// Redo pops the most recent undone state and stores current for undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	next, ok := pop(&h.redo)
	if !ok {
		return Snapshot{}, false
	}
	h.undo = push(h.undo, current, h.limit)
	return next, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the depth of the undo and redo stacks.
func (h *History) Len() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

func (h *History) Limit() int { return h.limit }

func push(stack []Snapshot, s Snapshot, limit int) []Snapshot {
	if len(stack) >= limit {
		// drop the oldest so the backing array does not pin it
		n := copy(stack, stack[len(stack)-limit+1:])
		stack = stack[:n]
	}
	return append(stack, s)
}

func pop(stack *[]Snapshot) (Snapshot, bool) {
	s := *stack
	if len(s) == 0 {
		return Snapshot{}, false
	}
	top := s[len(s)-1]
	s[len(s)-1] = Snapshot{}
	*stack = s[:len(s)-1]
	return top, true
}
