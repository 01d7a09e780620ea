package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// Session is one editing session: a store plus the controllers that edit it.
type Session struct {
	ID    string
	Store *Store

	gateway Gateway

	mu             sync.RWMutex
	loadErr        error
	sectionOrder   *SectionOrder
	templates      *TemplatePicker
	personal       *PersonalDetailsForm
	achievements   *ListForm[model.Achievement]
	certifications *ListForm[model.Certification]
	customSections *ListForm[model.CustomSection]
	skills         *SkillsForm
}

func newSession(id string, gw Gateway, logger *slog.Logger) *Session {
	return &Session{ID: id, Store: NewStore(gw, logger), gateway: gw}
}

// Reload fetches the document again and rebuilds the controllers from it.
// Drafts that were not saved are discarded.
func (s *Session) Reload(ctx context.Context) error {
	err := s.Store.Load(ctx, s.ID)

	order := NewSectionOrder(s.Store, s.gateway)
	if initErr := order.Init(); initErr != nil && err == nil {
		err = initErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
	s.sectionOrder = order
	s.templates = NewTemplatePicker(s.Store, s.gateway)
	s.personal = NewPersonalDetailsForm(s.Store, s.gateway)
	s.achievements = NewAchievementForm(s.Store, s.gateway)
	s.certifications = NewCertificationForm(s.Store, s.gateway)
	s.customSections = NewCustomSectionForm(s.Store, s.gateway)
	s.skills = NewSkillsForm(s.Store, s.gateway)
	return err
}

// LoadErr returns the error of the last load, if it failed.
func (s *Session) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

func (s *Session) SectionOrder() *SectionOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sectionOrder
}

func (s *Session) Templates() *TemplatePicker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates
}

func (s *Session) Personal() *PersonalDetailsForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.personal
}

func (s *Session) Achievements() *ListForm[model.Achievement] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.achievements
}

func (s *Session) Certifications() *ListForm[model.Certification] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.certifications
}

func (s *Session) CustomSections() *ListForm[model.CustomSection] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customSections
}

func (s *Session) Skills() *SkillsForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skills
}

type sessionEntry struct {
	ready    chan struct{}
	session  *Session
	lastSeen time.Time
	pins     int
}

// Sessions keeps one Session per resume id and evicts idle ones.
type Sessions struct {
	gateway Gateway
	logger  *slog.Logger
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

func NewSessions(gw Gateway, ttl time.Duration, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		gateway: gw,
		logger:  logger,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*sessionEntry),
	}
}

// Open returns the session for id, loading it on first access. A session
// whose load failed is still returned, starting from an empty document.
func (r *Sessions) Open(ctx context.Context, id string) *Session {
	return r.open(ctx, id, false).session
}

// Acquire opens the session for id and keeps it from being swept until
// release is called. Long-lived readers such as preview sockets use it.
func (r *Sessions) Acquire(ctx context.Context, id string) (*Session, func()) {
	e := r.open(ctx, id, true)
	var once sync.Once
	release := func() {
		once.Do(func() {
			r.mu.Lock()
			e.pins--
			e.lastSeen = r.now()
			r.mu.Unlock()
		})
	}
	return e.session, release
}

func (r *Sessions) open(ctx context.Context, id string, pin bool) *sessionEntry {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		e = &sessionEntry{ready: make(chan struct{}), session: newSession(id, r.gateway, r.logger)}
		r.entries[id] = e
	}
	e.lastSeen = r.now()
	if pin {
		e.pins++
	}
	r.mu.Unlock()

	if ok {
		<-e.ready
		return e
	}
	if err := e.session.Reload(ctx); err != nil {
		r.logger.Warn("session opened without stored document", "resume_id", id, "error", err)
	} else {
		r.logger.Info("session opened", "resume_id", id)
	}
	close(e.ready)
	return e
}

// Get returns an already open session.
func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		e.lastSeen = r.now()
	}
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	<-e.ready
	return e.session, true
}

func (r *Sessions) Close(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed. Acquired sessions are never evicted.
func (r *Sessions) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.entries {
		if e.pins == 0 && e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

// Run sweeps idle sessions until ctx is done.
func (r *Sessions) Run(ctx context.Context) {
	if r.ttl <= 0 {
		return
	}
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("evicted idle sessions", "count", n)
			}
		}
	}
}

// SaveField persists the current value of one field. It serves sections
// that are edited in place without a dedicated form.
func (s *Session) SaveField(ctx context.Context, f model.Field) error {
	v, err := s.Store.Snapshot().Value(f)
	if err != nil {
		return err
	}
	if res := s.gateway.UpdateResume(ctx, s.Store.ID(), model.Patch{f: v}); !res.Success {
		return newSaveError(f, res)
	}
	return nil
}
