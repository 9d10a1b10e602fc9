package chat

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/sohamshirke10/recruiter-bandhu/internal/api"
	"github.com/sohamshirke10/recruiter-bandhu/internal/testutil"
	"github.com/sohamshirke10/recruiter-bandhu/internal/transcript"
)

func newTestStore(t *testing.T, b *testutil.Backend) *Store {
	t.Helper()
	return NewStore(api.New(b.URL(), "recruiter1", 5*time.Second), nil, nil)
}

func TestBootstrapExcludesReservedTables(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/gettables", map[string]any{
		"tables": []string{
			"seniorengineer_1700000000000",
			"candidates",
			"rejected_candidates",
			"users",
			"datascientist_1710000000000",
		},
	})

	store := newTestStore(t, b)
	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	sessions := store.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("sessions: got %d, want 2", len(sessions))
	}
	for _, sess := range sessions {
		if ReservedTable(sess.DatasetRef) {
			t.Errorf("reserved table %s leaked into session list", sess.DatasetRef)
		}
	}
}

func TestBootstrapOrdersNewestFirst(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/gettables", map[string]any{
		"tables": []string{
			"older_1600000000000",
			"newer_1710000000000",
		},
	})

	store := newTestStore(t, b)
	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	sessions := store.Sessions()
	if sessions[0].Title != "newer" || sessions[1].Title != "older" {
		t.Errorf("order: got [%s %s]", sessions[0].Title, sessions[1].Title)
	}
}

func TestSetActiveHydratesHistoryOnce(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/gettables", map[string]any{"tables": []string{"role_1700000000000"}})
	b.HandleJSON("/get-chats", map[string]any{
		"chats": [][]string{{"who applied?", "12 candidates."}},
	})

	store := newTestStore(t, b)
	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if err := store.SetActive(context.Background(), "role_1700000000000"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}

	sess := store.Active()
	if sess == nil {
		t.Fatal("no active session")
	}
	if len(sess.Messages) != 2 {
		t.Fatalf("messages: got %d, want 2", len(sess.Messages))
	}
	if sess.Messages[0].Role != RoleUser || sess.Messages[1].Role != RoleAssistant {
		t.Errorf("roles: got %s, %s", sess.Messages[0].Role, sess.Messages[1].Role)
	}
	if sess.Messages[1].Pending {
		t.Error("hydrated assistant message must not be pending")
	}

	// Re-activating must not refetch and must not clobber messages.
	if err := store.SetActive(context.Background(), "role_1700000000000"); err != nil {
		t.Fatalf("second SetActive failed: %v", err)
	}
	if b.Hits("/get-chats") != 1 {
		t.Errorf("history fetches: got %d, want 1", b.Hits("/get-chats"))
	}
}

func TestSetActiveHistoryFailureAllowsRetry(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/gettables", map[string]any{"tables": []string{"role_1700000000000"}})
	b.HandleError("/get-chats", http.StatusInternalServerError, "down")

	store := newTestStore(t, b)
	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if err := store.SetActive(context.Background(), "role_1700000000000"); err == nil {
		t.Fatal("expected history fetch error")
	}
	// Session stays active despite the failed hydration.
	if store.Active() == nil {
		t.Fatal("session should remain active")
	}

	b.HandleJSON("/get-chats", map[string]any{"chats": [][]string{{"q", "a"}}})
	if err := store.SetActive(context.Background(), "role_1700000000000"); err != nil {
		t.Fatalf("retry SetActive failed: %v", err)
	}
	if len(store.Active().Messages) != 2 {
		t.Errorf("messages after retry: got %d, want 2", len(store.Active().Messages))
	}
}

func TestSetActiveUnknownSession(t *testing.T) {
	b := testutil.NewBackend(t)
	store := newTestStore(t, b)

	err := store.SetActive(context.Background(), "nope")
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestNewTableSessionValidation(t *testing.T) {
	b := testutil.NewBackend(t)
	store := newTestStore(t, b)

	tests := []struct {
		name     string
		role, jd, csv string
	}{
		{"blank role", "  ", "jd.pdf", "c.csv"},
		{"missing jd", "Senior Engineer", "", "c.csv"},
		{"missing csv", "Senior Engineer", "jd.pdf", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.NewTableSession(context.Background(), tt.role, tt.jd, tt.csv)
			if _, ok := err.(*ValidationError); !ok {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
	if b.Hits("/newChat") != 0 {
		t.Error("validation failures must not reach the backend")
	}
}

func TestNewTableSessionUploadsAndActivates(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/newChat", map[string]any{"result": map[string]string{"message": "ok"}})

	dir := testutil.TempFiles(t, map[string]string{
		"jd.pdf":         testutil.JobDescriptionText,
		"candidates.csv": testutil.CandidateCSV,
	})

	store := newTestStore(t, b)
	sess, err := store.NewTableSession(context.Background(), "Senior Engineer",
		filepath.Join(dir, "jd.pdf"), filepath.Join(dir, "candidates.csv"))
	if err != nil {
		t.Fatalf("NewTableSession failed: %v", err)
	}

	if sess.Kind != KindTableBound {
		t.Errorf("kind: got %s", sess.Kind)
	}
	if !sess.Processed {
		t.Error("fresh session should be processed after successful upload")
	}
	if store.Active() != sess {
		t.Error("new session should be active")
	}
	if got := store.Sessions(); len(got) == 0 || got[0] != sess {
		t.Error("new session should be first in the list")
	}
}

func TestNewTableSessionUploadFailure(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleError("/newChat", http.StatusBadGateway, "ingest failed")

	dir := testutil.TempFiles(t, map[string]string{"jd.pdf": "x", "c.csv": "y"})

	store := newTestStore(t, b)
	_, err := store.NewTableSession(context.Background(), "Senior Engineer",
		filepath.Join(dir, "jd.pdf"), filepath.Join(dir, "c.csv"))
	if err == nil {
		t.Fatal("expected upload error")
	}
	if len(store.Sessions()) != 0 {
		t.Error("failed upload must not insert a session")
	}
}

func TestNewFreeformSessionValidation(t *testing.T) {
	b := testutil.NewBackend(t)
	store := newTestStore(t, b)

	_, err := store.NewFreeformSession("   ")
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestFreeformTranscriptRoundTrip(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/chat/2", map[string]any{"summary": "hello there", "raw": map[string]any{}})

	ts, err := transcript.NewStore(filepath.Join(t.TempDir(), "transcripts.db"))
	if err != nil {
		t.Fatalf("transcript store: %v", err)
	}
	defer func() { _ = ts.Close() }()

	client := api.New(b.URL(), "recruiter1", 5*time.Second)

	store := NewStore(client, ts, nil)
	sess, err := store.NewFreeformSession("market research")
	if err != nil {
		t.Fatalf("NewFreeformSession failed: %v", err)
	}
	if _, err := store.Send(context.Background(), sess.ID, "hi"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	want := store.Active().Messages

	// A fresh store resuming by the same name restores the exact
	// message sequence.
	resumed := NewStore(client, ts, nil)
	sess2, err := resumed.NewFreeformSession("market research")
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}

	if len(sess2.Messages) != len(want) {
		t.Fatalf("messages: got %d, want %d", len(sess2.Messages), len(want))
	}
	for i := range want {
		got := sess2.Messages[i]
		if got.ID != want[i].ID || got.Role != want[i].Role || got.Content != want[i].Content || got.Pending != want[i].Pending {
			t.Errorf("message %d: got %+v, want %+v", i, got, want[i])
		}
	}
}

func TestSubscriberNotifiedOnMutation(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/gettables", map[string]any{"tables": []string{"role_1700000000000"}})

	store := newTestStore(t, b)
	calls := 0
	store.Subscribe(func() { calls++ })

	if err := store.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if calls == 0 {
		t.Error("subscriber not notified on bootstrap")
	}
}
