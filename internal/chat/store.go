// Package chat holds the session store and the send/reconcile
// orchestration around the recruiting backend.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sohamshirke10/recruiter-bandhu/internal/api"
	"github.com/sohamshirke10/recruiter-bandhu/internal/log"
	"github.com/sohamshirke10/recruiter-bandhu/internal/transcript"
)

// timestampLayout is the display format attached to messages.
const timestampLayout = "15:04:05"

// Store holds the known sessions and which one is active. It is an
// explicit object passed by reference to consumers; subscribers are
// notified after every mutation. At most one session is active at a
// time.
type Store struct {
	client      *api.Client
	transcripts *transcript.Store // nil disables local persistence
	logger      *log.Logger       // nil disables event logging

	mu       sync.Mutex
	sessions []*Session
	activeID string
	subs     []func()
}

// NewStore creates a Store over the given backend client. transcripts
// and logger may be nil.
func NewStore(client *api.Client, transcripts *transcript.Store, logger *log.Logger) *Store {
	return &Store{
		client:      client,
		transcripts: transcripts,
		logger:      logger,
	}
}

// Subscribe registers fn to run after every store mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Sessions returns the sessions, newest-first.
func (s *Store) Sessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Active returns the active session, or nil when none is active.
func (s *Store) Active() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(s.activeID)
}

// Get returns the session with the given id, or nil.
func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

// find must be called with s.mu held.
func (s *Store) find(id string) *Session {
	if id == "" {
		return nil
	}
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

// Bootstrap replaces the session list with sessions derived from the
// remote dataset listing, excluding reserved system tables. Sessions
// are ordered newest-first by the creation time embedded in the
// dataset identifier.
func (s *Store) Bootstrap(ctx context.Context) error {
	tables, err := s.client.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}

	var sessions []*Session
	for _, table := range tables {
		if ReservedTable(table) {
			continue
		}
		title, createdAt := SplitTableName(table)
		sessions = append(sessions, &Session{
			ID:         table,
			Title:      title,
			Kind:       KindTableBound,
			DatasetRef: table,
			Processed:  true,
			CreatedAt:  createdAt,
		})
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	s.mu.Lock()
	s.sessions = sessions
	if s.find(s.activeID) == nil {
		s.activeID = ""
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// SetActive marks the session active. For a table-bound session whose
// messages are not loaded yet, the remote chat history is fetched
// exactly once per activation; a session with messages already in
// place is never refetched.
func (s *Store) SetActive(ctx context.Context, id string) error {
	s.mu.Lock()
	sess := s.find(id)
	if sess == nil {
		s.mu.Unlock()
		return &ValidationError{Field: "session", Reason: "unknown session " + id}
	}
	s.activeID = id

	needHistory := sess.Kind == KindTableBound && !sess.historyLoaded && len(sess.Messages) == 0
	if needHistory {
		sess.historyLoaded = true
	}
	dataset := sess.DatasetRef
	s.mu.Unlock()
	s.notify()

	s.logEvent(log.LogEvent{Event: log.EventSessionOpened, SessionID: id, DatasetRef: dataset})

	if !needHistory {
		return nil
	}

	history, err := s.client.ChatHistory(ctx, dataset)
	if err != nil {
		// Allow a retry on the next activation.
		s.mu.Lock()
		sess.historyLoaded = false
		s.mu.Unlock()
		return fmt.Errorf("load chat history: %w", err)
	}

	s.mu.Lock()
	if len(sess.Messages) == 0 {
		sess.Messages = historyMessages(history)
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// historyMessages converts stored question/answer pairs into the
// message sequence they represent.
func historyMessages(history []api.QA) []Message {
	var msgs []Message
	for _, qa := range history {
		if qa.Question != "" {
			msgs = append(msgs, Message{
				ID:      uuid.New().String(),
				Role:    RoleUser,
				Content: qa.Question,
			})
		}
		if qa.Answer != "" {
			msgs = append(msgs, Message{
				ID:      uuid.New().String(),
				Role:    RoleAssistant,
				Content: qa.Answer,
			})
		}
	}
	return msgs
}

// NewTableSession uploads the job description and candidates file,
// creating a backend dataset, and activates a new session for it. The
// new session is inserted at the front of the list.
func (s *Store) NewTableSession(ctx context.Context, roleName, jdPath, csvPath string) (*Session, error) {
	if strings.TrimSpace(roleName) == "" {
		return nil, &ValidationError{Field: "role name", Reason: "required"}
	}
	if jdPath == "" {
		return nil, &ValidationError{Field: "job description file", Reason: "required"}
	}
	if csvPath == "" {
		return nil, &ValidationError{Field: "candidates file", Reason: "required"}
	}

	table := GenerateTableName(roleName)
	if _, err := s.client.CreateDataset(ctx, table, jdPath, csvPath); err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}

	sess := &Session{
		ID:         table,
		Title:      roleName,
		Kind:       KindTableBound,
		DatasetRef: table,
		Processed:  true,
		CreatedAt:  time.Now(),
		// A fresh dataset has no server-side transcript to hydrate.
		historyLoaded: true,
	}

	s.mu.Lock()
	s.sessions = append([]*Session{sess}, s.sessions...)
	s.activeID = sess.ID
	s.mu.Unlock()
	s.notify()

	s.logEvent(log.LogEvent{Event: log.EventDatasetUploaded, DatasetRef: table})
	s.logEvent(log.LogEvent{Event: log.EventSessionCreated, SessionID: sess.ID, DatasetRef: table})
	return sess, nil
}

// NewFreeformSession creates or resumes a session with no backing
// dataset. Any transcript previously saved under the same name is
// loaded so the conversation continues where it left off.
func (s *Store) NewFreeformSession(name string) (*Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "chat name", Reason: "required"}
	}

	sess := &Session{
		ID:        uuid.New().String(),
		Title:     name,
		Kind:      KindFreeform,
		Processed: true,
		CreatedAt: time.Now(),
	}

	if s.transcripts != nil {
		if payload, err := s.transcripts.Load(name); err == nil && payload != nil {
			var msgs []Message
			// A corrupt transcript degrades to an empty conversation
			// rather than failing session creation.
			if err := json.Unmarshal(payload, &msgs); err == nil {
				sess.Messages = msgs
			}
		}
	}

	s.mu.Lock()
	s.sessions = append([]*Session{sess}, s.sessions...)
	s.activeID = sess.ID
	s.mu.Unlock()
	s.notify()

	s.logEvent(log.LogEvent{Event: log.EventSessionCreated, SessionID: sess.ID})
	return sess, nil
}

// saveTranscript persists a freeform session's messages. Fire and
// forget: failures are swallowed, the conversation stays usable.
func (s *Store) saveTranscript(sess *Session) {
	if s.transcripts == nil || sess.Kind != KindFreeform {
		return
	}

	s.mu.Lock()
	payload, err := json.Marshal(sess.Messages)
	s.mu.Unlock()
	if err != nil {
		return
	}
	_ = s.transcripts.Save(sess.Title, payload)
}

func (s *Store) logEvent(event log.LogEvent) {
	if s.logger == nil {
		return
	}
	_ = s.logger.Append(event)
}
