// Package session keeps the inputs and results of an interactive user session.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Result keys used by the presentation layer.
const (
	ResultResume        = "resume_analysis"
	ResultMatch         = "job_matching"
	ResultCompany       = "company_research"
	ResultInterview     = "interview_prep"
	ResultComprehensive = "comprehensive"
)

// Session holds what a user entered and what was computed for it.
type Session struct {
	ID             uuid.UUID      `json:"id"`
	ResumeText     string         `json:"resume_text,omitempty"`
	JobDescription string         `json:"job_description,omitempty"`
	CompanyName    string         `json:"company_name,omitempty"`
	Results        map[string]any `json:"results,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// HasResume reports whether resume text was loaded.
func (s *Session) HasResume() bool {
	return s != nil && s.ResumeText != ""
}

func (s *Session) clone() *Session {
	cp := *s
	cp.Results = make(map[string]any, len(s.Results))
	for k, v := range s.Results {
		cp.Results[k] = v
	}
	return &cp
}

// Store is an in-memory, concurrency-safe session registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	now      func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
	}
}

// Create registers a new empty session and returns a copy of it.
func (s *Store) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.New(),
		Results:   map[string]any{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess.clone()
}

// Get returns a copy of the session.
func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess.clone(), nil
}

// Update applies fn to the stored session under the write lock and returns the updated copy.
func (s *Store) Update(id uuid.UUID, fn func(*Session)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	fn(sess)
	if sess.Results == nil {
		sess.Results = map[string]any{}
	}
	sess.ID = id
	sess.UpdatedAt = s.now()

	return sess.clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
