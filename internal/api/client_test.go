package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/sohamshirke10/recruiter-bandhu/internal/testutil"
)

func newTestClient(b *testutil.Backend) *Client {
	return New(b.URL(), "recruiter1", 5*time.Second)
}

func TestAskSendsIdentityAndDecodesFollowups(t *testing.T) {
	b := testutil.NewBackend(t)

	var got map[string]string
	b.Handle("/chat", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result":    "Asha ranks highest.",
			"followups": []string{"Why Asha?", "Show runner-up"},
		})
	})

	ans, err := newTestClient(b).Ask(context.Background(), "senior_123", "who is the best fit?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if got["tableName"] != "senior_123" || got["query"] != "who is the best fit?" {
		t.Errorf("request body: got %v", got)
	}
	if got["user_id"] != "recruiter1" {
		t.Errorf("user_id: got %q, want recruiter1", got["user_id"])
	}
	if ans.Result != "Asha ranks highest." {
		t.Errorf("result: got %q", ans.Result)
	}
	if len(ans.Followups) != 2 {
		t.Errorf("followups: got %d, want 2", len(ans.Followups))
	}
}

func TestAskNonSuccessBecomesRemoteError(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleError("/chat", http.StatusInternalServerError, "table not found")

	_, err := newTestClient(b).Ask(context.Background(), "gone_1", "hi")
	if err == nil {
		t.Fatal("expected error")
	}

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %T: %v", err, err)
	}
	if re.Status != http.StatusInternalServerError {
		t.Errorf("status: got %d", re.Status)
	}
	if re.Message != "table not found" {
		t.Errorf("message: got %q", re.Message)
	}
}

func TestAskMalformedBodyBecomesParseError(t *testing.T) {
	b := testutil.NewBackend(t)
	b.Handle("/chat", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := newTestClient(b).Ask(context.Background(), "t_1", "hi")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
}

func TestAskFreeformSendsRecentContext(t *testing.T) {
	b := testutil.NewBackend(t)

	var got map[string]any
	b.Handle("/chat/2", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"summary": "done", "raw": map[string]any{}})
	})

	recent := []QA{{Question: "q1", Answer: "a1"}, {Question: "q2", Answer: "a2"}}
	ans, err := newTestClient(b).AskFreeform(context.Background(), "compare them", recent)
	if err != nil {
		t.Fatalf("AskFreeform failed: %v", err)
	}
	if ans.Summary != "done" {
		t.Errorf("summary: got %q", ans.Summary)
	}

	pairs, ok := got["chat_context"].([]any)
	if !ok || len(pairs) != 2 {
		t.Fatalf("chat_context: got %v", got["chat_context"])
	}
	first, _ := pairs[0].([]any)
	if len(first) != 2 || first[0] != "q1" || first[1] != "a1" {
		t.Errorf("first pair: got %v", first)
	}
}

func TestCreateDatasetUploadsMultipart(t *testing.T) {
	b := testutil.NewBackend(t)
	dir := testutil.TempFiles(t, map[string]string{
		"jd.pdf":         testutil.JobDescriptionText,
		"candidates.csv": testutil.CandidateCSV,
	})

	var tableName, csvContent string
	b.Handle("/newChat", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		tableName = r.FormValue("tableName")

		f, _, err := r.FormFile("csv")
		if err != nil {
			t.Errorf("csv part missing: %v", err)
		} else {
			data, _ := io.ReadAll(f)
			csvContent = string(data)
			_ = f.Close()
		}
		if _, _, err := r.FormFile("pdf"); err != nil {
			t.Errorf("pdf part missing: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]string{"message": "table created"},
		})
	})

	msg, err := newTestClient(b).CreateDataset(context.Background(), "senior_123",
		filepath.Join(dir, "jd.pdf"), filepath.Join(dir, "candidates.csv"))
	if err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}

	if msg != "table created" {
		t.Errorf("message: got %q", msg)
	}
	if tableName != "senior_123" {
		t.Errorf("tableName: got %q", tableName)
	}
	if csvContent != testutil.CandidateCSV {
		t.Errorf("csv content mismatch: got %q", csvContent)
	}
}

func TestCreateDatasetMissingFile(t *testing.T) {
	b := testutil.NewBackend(t)

	_, err := newTestClient(b).CreateDataset(context.Background(), "t_1", "/nonexistent/jd.pdf", "/nonexistent/c.csv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if b.Hits("/newChat") != 0 {
		t.Error("no request should be made when a file is missing")
	}
}

func TestChatHistoryPairs(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/get-chats", map[string]any{
		"chats": [][]string{
			{"who applied?", "12 candidates applied."},
			{"top skill?", "Python."},
		},
	})

	history, err := newTestClient(b).ChatHistory(context.Background(), "senior_123")
	if err != nil {
		t.Fatalf("ChatHistory failed: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("history length: got %d, want 2", len(history))
	}
	if history[0].Question != "who applied?" || history[0].Answer != "12 candidates applied." {
		t.Errorf("first exchange: got %+v", history[0])
	}
}

func TestJobDescriptionKeyTolerance(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"job_desc key", map[string]any{"job_desc": "JD text"}, "JD text"},
		{"result key", map[string]any{"result": "JD text"}, "JD text"},
		{"description key", map[string]any{"description": "JD text"}, "JD text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.NewBackend(t)
			b.HandleJSON("/get-job-description", tt.body)

			got, err := newTestClient(b).JobDescription(context.Background(), "t_1")
			if err != nil {
				t.Fatalf("JobDescription failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJobDescriptionMissingField(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/get-job-description", map[string]any{"unrelated": 1})

	_, err := newTestClient(b).JobDescription(context.Background(), "t_1")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
}

func TestLoginSetsUserID(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/login", map[string]string{"message": "Login successful"})

	c := New(b.URL(), "", 5*time.Second)
	if err := c.Login(context.Background(), "recruiter2", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if c.UserID() != "recruiter2" {
		t.Errorf("user id: got %q", c.UserID())
	}
}

func TestLoginRejectedLeavesUserIDUnset(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleError("/login", http.StatusUnauthorized, "Invalid user_id or password")

	c := New(b.URL(), "", 5*time.Second)
	err := c.Login(context.Background(), "recruiter2", "wrong")

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %T: %v", err, err)
	}
	if c.UserID() != "" {
		t.Errorf("user id should stay empty after failed login, got %q", c.UserID())
	}
}

func TestRegisterConflict(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleError("/register", http.StatusConflict, "User ID already exists")

	err := newTestClient(b).Register(context.Background(), "Acme", "recruiter1", "secret")

	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %T: %v", err, err)
	}
	if re.Status != http.StatusConflict {
		t.Errorf("status: got %d, want 409", re.Status)
	}
}

func TestTableSnapshotDecodesRows(t *testing.T) {
	b := testutil.NewBackend(t)
	b.HandleJSON("/insights", map[string]any{
		"columns": []string{"name", "match_score"},
		"data": []map[string]any{
			{"name": "Asha", "match_score": 95},
			{"name": "Ravi", "match_score": 82},
		},
	})

	snap, err := newTestClient(b).TableSnapshot(context.Background(), "senior_123")
	if err != nil {
		t.Fatalf("TableSnapshot failed: %v", err)
	}

	if len(snap.Columns) != 2 || len(snap.Rows) != 2 {
		t.Fatalf("snapshot shape: %d columns, %d rows", len(snap.Columns), len(snap.Rows))
	}
	if snap.Rows[0]["name"] != "Asha" {
		t.Errorf("first row: got %v", snap.Rows[0])
	}
}
