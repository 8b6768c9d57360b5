// Edit session: the canonical image, its original and the linear undo history
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"image-transform-editor/internal/algorithms"
	"image-transform-editor/internal/core"
	"image-transform-editor/internal/history"
)

// EncodeFunc turns pixels into file bytes. It must not retain or modify buf.
type EncodeFunc func(buf *core.PixelBuffer) ([]byte, error)

// ErrReplayMismatch is returned by Replay when recomputing the timeline from
// the original does not reproduce the recorded buffers.
var ErrReplayMismatch = errors.New("replay does not reproduce history")

// State is the lifecycle phase of a session.
type State int

const (
	StateEmpty State = iota
	StateLoaded
	StateEdited
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateEdited:
		return "edited"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Session at Open.
type Option func(*Session)

// WithLogger sets the logger; sessions are silent by default.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Session owns one image being edited. history[0] is always the original and
// the last entry is the current image. A single caller drives a session; the
// lock only keeps readers such as GUI refreshes consistent.
type Session struct {
	mu       sync.RWMutex
	id       string
	original *core.PixelBuffer
	history  *history.Stack
	logger   logrus.FieldLogger
}

// Open starts a session on buf. It only fails when buf is malformed.
func Open(buf *core.PixelBuffer, opts ...Option) (*Session, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	// Detach from the caller so later writes to buf cannot reach the history.
	original := buf.Clone()
	s := &Session{
		id:       uuid.NewString(),
		original: original,
		history:  history.NewStack(original),
		logger:   quiet,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("session_id", s.id)

	s.logger.WithFields(logrus.Fields{
		"width":    buf.Width(),
		"height":   buf.Height(),
		"channels": buf.Channels(),
	}).Info("Session opened")

	return s, nil
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Apply computes t on the current image. On success the result is appended
// to the history and returned; on failure the history is left untouched.
func (s *Session) Apply(t core.Transform) (*core.PixelBuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	next, err := algorithms.Compute(s.history.Top().Buffer, t)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"transform": describe(t),
			"error":     err,
		}).Warn("Transform rejected")
		return nil, fmt.Errorf("apply %s: %w", describe(t), err)
	}

	entry := s.history.Push(t, next)
	s.logger.WithFields(logrus.Fields{
		"step":      entry.ID,
		"transform": t.String(),
		"width":     next.Width(),
		"height":    next.Height(),
		"history":   s.history.Len(),
		"duration":  time.Since(start).Round(time.Microsecond),
	}).Info("Transform applied")

	return next, nil
}

// Undo drops the latest edit and returns the new current image. With only
// the original left it returns core.ErrNothingToUndo and changes nothing.
func (s *Session) Undo() (*core.PixelBuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	top, err := s.history.Pop()
	if err != nil {
		s.logger.Debug("Nothing to undo")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"current": top.Label(),
		"history": s.history.Len(),
	}).Info("Transform undone")
	return top.Buffer, nil
}

// RestoreOriginal discards every edit and returns the original image.
func (s *Session) RestoreOriginal() *core.PixelBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	discarded := s.history.Len() - 1
	base := s.history.Reset()
	s.logger.WithField("discarded", discarded).Info("Restored original image")
	return base.Buffer
}

// Current returns the latest image.
func (s *Session) Current() *core.PixelBuffer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Top().Buffer
}

// Original returns the image the session was opened with.
func (s *Session) Original() *core.PixelBuffer {
	return s.original
}

// Previous returns the image below the current one; ok is false when the
// current image is the original.
func (s *Session) Previous() (*core.PixelBuffer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.history.At(s.history.Len() - 2)
	if !ok {
		return nil, false
	}
	return entry.Buffer, true
}

// Len returns the number of history entries, original included.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}

// State reports the lifecycle phase. A nil session is Empty.
func (s *Session) State() State {
	if s == nil {
		return StateEmpty
	}
	if s.Len() > 1 {
		return StateEdited
	}
	return StateLoaded
}

// Steps returns the applied transforms, oldest first.
func (s *Session) Steps() []core.Transform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Transforms()
}

// Entries returns the timeline, original first.
func (s *Session) Entries() []history.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Entries()
}

// Save hands the current image, unmodified, to encode and returns its bytes.
// Failures are reported as core.ErrEncodeFailure; the session is unaffected.
func (s *Session) Save(encode EncodeFunc) ([]byte, error) {
	if encode == nil {
		return nil, fmt.Errorf("%w: no encoder", core.ErrEncodeFailure)
	}

	current := s.Current()
	data, err := encode(current)
	if err != nil {
		s.logger.WithField("error", err).Error("Encoding failed")
		if errors.Is(err, core.ErrEncodeFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", core.ErrEncodeFailure, err)
	}

	s.logger.WithFields(logrus.Fields{
		"bytes":  len(data),
		"width":  current.Width(),
		"height": current.Height(),
	}).Debug("Current image encoded")
	return data, nil
}

// Replay recomputes every step from the original and checks that each
// result matches the recorded buffer bit for bit.
func (s *Session) Replay() error {
	entries := s.Entries()

	if !entries[0].Buffer.Equal(s.original) {
		return fmt.Errorf("%w: base entry differs from original", ErrReplayMismatch)
	}

	buf := s.original
	for i, entry := range entries[1:] {
		next, err := algorithms.Compute(buf, entry.Transform)
		if err != nil {
			return fmt.Errorf("replay step %d (%s): %w", i+1, entry.Label(), err)
		}
		if !next.Equal(entry.Buffer) {
			return fmt.Errorf("%w: step %d (%s)", ErrReplayMismatch, i+1, entry.Label())
		}
		buf = next
	}
	return nil
}

func describe(t core.Transform) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
