package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// Store holds the working copy of one resume for an editing session. It is
// the single source of truth for previews; forms push into it after saving.
type Store struct {
	gateway Gateway
	logger  *slog.Logger

	mu      sync.RWMutex
	id      string
	doc     model.Resume
	version uint64

	subMu sync.Mutex
	subs  map[chan uint64]struct{}
}

func NewStore(gw Gateway, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{gateway: gw, logger: logger, subs: make(map[chan uint64]struct{})}
}

// Load fetches the document and installs it, replacing the previous state.
// On failure the previous state is kept and the error is returned.
func (s *Store) Load(ctx context.Context, id string) error {
	doc, err := s.gateway.FetchResume(ctx, id)
	if err != nil {
		s.logger.Error("resume load failed", "resume_id", id, "error", err)
		s.mu.Lock()
		s.id = id
		s.mu.Unlock()
		return fmt.Errorf("load resume %s: %w", id, err)
	}
	doc = doc.Clone()
	doc.ID = id
	doc.SanitizeRichText()

	s.mu.Lock()
	s.id = id
	s.doc = doc
	s.version++
	v := s.version
	s.mu.Unlock()

	s.publish(v)
	return nil
}

func (s *Store) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() model.Resume {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// ReplaceList replaces a list field wholesale.
func (s *Store) ReplaceList(f model.Field, list any) error {
	return s.mutate(func(doc *model.Resume) error { return doc.SetList(f, list) })
}

// MergeMap shallow-merges kv into a keyed field.
func (s *Store) MergeMap(f model.Field, kv map[string]string) error {
	return s.mutate(func(doc *model.Resume) error { return doc.MergeMap(f, kv) })
}

// SetScalar overwrites a scalar field.
func (s *Store) SetScalar(f model.Field, v string) error {
	return s.mutate(func(doc *model.Resume) error { return doc.SetScalar(f, v) })
}

// mutate applies fn to a copy and installs it only when fn succeeds.
func (s *Store) mutate(fn func(doc *model.Resume) error) error {
	s.mu.Lock()
	next := s.doc.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.doc = next
	s.version++
	v := s.version
	s.mu.Unlock()

	s.publish(v)
	return nil
}

// Subscribe returns a channel that receives the store version after every
// change. Slow readers only see the latest version. Call cancel to stop.
func (s *Store) Subscribe() (<-chan uint64, func()) {
	ch := make(chan uint64, 1)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, ch)
			s.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) publish(v uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}
