// History package keeps the linear edit timeline of a session
package history

import (
	"fmt"
	"time"

	"image-transform-editor/internal/core"
)

// Entry is one frame of the timeline. The base entry has a nil Transform;
// every later entry holds the Transform that produced Buffer from the entry
// below it.
type Entry struct {
	ID        string
	Transform core.Transform
	Buffer    *core.PixelBuffer
	AppliedAt time.Time
}

// Label describes the entry for listings.
func (e Entry) Label() string {
	if e.Transform == nil {
		return "original"
	}
	return e.Transform.String()
}

// Stack is an append / truncate-from-end sequence of entries that is never
// empty. It does no locking; the owning session serialises access.
type Stack struct {
	entries []Entry
	nextID  int
	now     func() time.Time
}

// NewStack seeds the stack with base as entry 0.
func NewStack(base *core.PixelBuffer) *Stack {
	s := &Stack{
		entries: make([]Entry, 0, 8),
		nextID:  1,
		now:     time.Now,
	}
	s.entries = append(s.entries, Entry{
		ID:        s.newID(),
		Buffer:    base,
		AppliedAt: s.now(),
	})
	return s
}

func (s *Stack) newID() string {
	id := fmt.Sprintf("step_%d", s.nextID)
	s.nextID++
	return id
}

// Push appends the result of applying t to the current top.
func (s *Stack) Push(t core.Transform, buf *core.PixelBuffer) Entry {
	entry := Entry{
		ID:        s.newID(),
		Transform: t,
		Buffer:    buf,
		AppliedAt: s.now(),
	}
	s.entries = append(s.entries, entry)
	return entry
}

// Pop removes the top entry and returns the new top. It fails with
// core.ErrNothingToUndo when only the base entry is left.
func (s *Stack) Pop() (Entry, error) {
	if len(s.entries) <= 1 {
		return s.Top(), core.ErrNothingToUndo
	}
	last := len(s.entries) - 1
	s.entries[last] = Entry{}
	s.entries = s.entries[:last]
	return s.Top(), nil
}

// Reset truncates the stack to the base entry.
func (s *Stack) Reset() Entry {
	for i := 1; i < len(s.entries); i++ {
		s.entries[i] = Entry{}
	}
	s.entries = s.entries[:1]
	return s.entries[0]
}

// Top returns the most recent entry.
func (s *Stack) Top() Entry { return s.entries[len(s.entries)-1] }

// Base returns entry 0.
func (s *Stack) Base() Entry { return s.entries[0] }

// Len returns the number of entries, base included.
func (s *Stack) Len() int { return len(s.entries) }

// At returns entry i; ok is false when i is out of range.
func (s *Stack) At(i int) (Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Entries returns a copy of the timeline, base first.
func (s *Stack) Entries() []Entry {
	result := make([]Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Transforms returns the transforms applied after the base, oldest first.
func (s *Stack) Transforms() []core.Transform {
	result := make([]core.Transform, 0, len(s.entries)-1)
	for _, e := range s.entries[1:] {
		result = append(result, e.Transform)
	}
	return result
}
