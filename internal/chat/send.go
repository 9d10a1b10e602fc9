package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sohamshirke10/recruiter-bandhu/internal/api"
	"github.com/sohamshirke10/recruiter-bandhu/internal/log"
)

// recentPairLimit bounds the conversation context sent with freeform
// questions.
const recentPairLimit = 5

// Send submits a question against the given session. The user message
// and a pending assistant placeholder are appended synchronously, so
// subscribers see them before the network round-trip resolves. On
// success the placeholder is filled in place; on failure exactly the
// placeholder is removed and the user message retained. There is no
// automatic retry.
//
// The returned followups let callers offer one-click next questions,
// each of which re-invokes Send.
//
// Only one Send per session should be in flight at a time; the store
// does not enforce mutual exclusion, callers are expected to disable
// input while a placeholder is pending.
func (s *Store) Send(ctx context.Context, sessionID, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Field: "message", Reason: "blank"}
	}

	s.mu.Lock()
	sess := s.find(sessionID)
	if sess == nil {
		s.mu.Unlock()
		return nil, &ValidationError{Field: "session", Reason: "unknown session " + sessionID}
	}
	if s.activeID != sessionID {
		s.mu.Unlock()
		return nil, &ValidationError{Field: "session", Reason: "not active"}
	}
	if !sess.Processed {
		s.mu.Unlock()
		return nil, &ValidationError{Field: "session", Reason: "dataset still processing"}
	}

	recent := recentPairs(sess.Messages, recentPairLimit)
	now := time.Now().Format(timestampLayout)

	userMsg := Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Content:   text,
		Timestamp: now,
	}
	placeholder := Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Pending:   true,
		Timestamp: now,
	}
	sess.Messages = append(sess.Messages, userMsg, placeholder)

	kind := sess.Kind
	dataset := sess.DatasetRef
	s.mu.Unlock()
	s.notify()
	s.saveTranscript(sess)

	s.logEvent(log.LogEvent{Event: log.EventChatSent, SessionID: sessionID, DatasetRef: dataset, Query: text})

	var content string
	var followups []string
	var err error
	switch kind {
	case KindTableBound:
		var ans *api.Answer
		ans, err = s.client.Ask(ctx, dataset, text)
		if err == nil {
			content = ans.Result
			followups = ans.Followups
		}
	default:
		var ans *api.FreeformAnswer
		ans, err = s.client.AskFreeform(ctx, text, recent)
		if err == nil {
			content = ans.Summary
		}
	}

	if err != nil {
		s.removeMessage(sess, placeholder.ID)
		s.notify()
		s.saveTranscript(sess)
		s.logEvent(log.LogEvent{Event: log.EventChatFailed, SessionID: sessionID, DatasetRef: dataset, Error: err.Error()})
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.mu.Lock()
	for i := range sess.Messages {
		if sess.Messages[i].ID == placeholder.ID {
			sess.Messages[i].Content = content
			sess.Messages[i].Pending = false
			sess.Messages[i].Followups = followups
			break
		}
	}
	s.mu.Unlock()
	s.notify()
	s.saveTranscript(sess)

	s.logEvent(log.LogEvent{Event: log.EventChatAnswered, SessionID: sessionID, DatasetRef: dataset})
	return followups, nil
}

// removeMessage deletes exactly the message with the given id, leaving
// every other message untouched.
func (s *Store) removeMessage(sess *Session, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range sess.Messages {
		if sess.Messages[i].ID == id {
			sess.Messages = append(sess.Messages[:i], sess.Messages[i+1:]...)
			return
		}
	}
}

// recentPairs extracts the most recent completed question/answer pairs
// from the message sequence, oldest first.
func recentPairs(messages []Message, limit int) []api.QA {
	var pairs []api.QA
	for i := 0; i < len(messages)-1; i++ {
		if messages[i].Role != RoleUser {
			continue
		}
		next := messages[i+1]
		if next.Role == RoleAssistant && !next.Pending && next.Content != "" {
			pairs = append(pairs, api.QA{Question: messages[i].Content, Answer: next.Content})
			i++
		}
	}
	if len(pairs) > limit {
		pairs = pairs[len(pairs)-limit:]
	}
	return pairs
}
