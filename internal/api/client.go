// Package api is the HTTP client for the recruiting backend.
// All endpoints speak JSON except dataset creation, which is multipart.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client talks to the recruiting backend. The backend is an opaque
// collaborator: resume parsing, scoring and LLM orchestration all
// happen on the other side of this surface.
type Client struct {
	baseURL string
	userID  string
	httpc   *http.Client
}

// New creates a Client for the backend at baseURL. userID is attached
// to chat and history requests; it may be empty before login.
func New(baseURL, userID string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// SetUserID updates the identity attached to subsequent requests.
func (c *Client) SetUserID(userID string) {
	c.userID = userID
}

// UserID returns the identity currently attached to requests.
func (c *Client) UserID() string {
	return c.userID
}

// CreateDataset uploads a job description PDF and a candidates CSV,
// creating the backend table named tableName. The backend ingests the
// files asynchronously; a success response means ingestion completed.
func (c *Client) CreateDataset(ctx context.Context, tableName, jdPath, csvPath string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := addFilePart(w, "pdf", jdPath); err != nil {
		return "", fmt.Errorf("attach job description: %w", err)
	}
	if err := addFilePart(w, "csv", csvPath); err != nil {
		return "", fmt.Errorf("attach candidates file: %w", err)
	}
	if err := w.WriteField("tableName", tableName); err != nil {
		return "", fmt.Errorf("write tableName field: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/newChat", &buf)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out newChatResponse
	if err := c.do(req, "/newChat", &out); err != nil {
		return "", err
	}
	return out.Result.Message, nil
}

// Ask submits a question against the named dataset and returns the
// answer plus suggested follow-up questions.
func (c *Client) Ask(ctx context.Context, tableName, query string) (*Answer, error) {
	body := map[string]string{
		"tableName": tableName,
		"query":     query,
		"user_id":   c.userID,
	}

	var out Answer
	if err := c.postJSON(ctx, "/chat", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AskFreeform submits a question with no backing dataset. recent holds
// the most recent question/answer pairs from the conversation, oldest
// first, so the backend can keep context.
func (c *Client) AskFreeform(ctx context.Context, prompt string, recent []QA) (*FreeformAnswer, error) {
	pairs := make([][]string, len(recent))
	for i, qa := range recent {
		pairs[i] = []string{qa.Question, qa.Answer}
	}
	body := map[string]any{
		"prompt":       prompt,
		"chat_context": pairs,
	}

	var out FreeformAnswer
	if err := c.postJSON(ctx, "/chat/2", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTables returns all dataset identifiers known to the backend,
// including reserved system tables. Filtering is the caller's job.
func (c *Client) ListTables(ctx context.Context) ([]string, error) {
	var out tablesResponse
	if err := c.getJSON(ctx, "/gettables", nil, &out); err != nil {
		return nil, err
	}
	return out.Tables, nil
}

// TableSnapshot fetches the rows and columns of the named dataset.
func (c *Client) TableSnapshot(ctx context.Context, tableName string) (*TableSnapshot, error) {
	q := url.Values{"tableName": {tableName}}

	var out TableSnapshot
	if err := c.getJSON(ctx, "/insights", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Candidate fetches the stored record for a single candidate by name.
// The record shape is backend-defined, so it is returned as-is.
func (c *Client) Candidate(ctx context.Context, name string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/candidate/"+url.PathEscape(name), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChatHistory fetches the stored transcript for the named dataset,
// oldest exchange first.
func (c *Client) ChatHistory(ctx context.Context, tableName string) ([]QA, error) {
	q := url.Values{
		"user_id":   {c.userID},
		"tableName": {tableName},
	}

	var out chatsResponse
	if err := c.getJSON(ctx, "/get-chats", q, &out); err != nil {
		return nil, err
	}

	history := make([]QA, 0, len(out.Chats))
	for _, pair := range out.Chats {
		qa := QA{}
		if len(pair) > 0 {
			qa.Question = pair[0]
		}
		if len(pair) > 1 {
			qa.Answer = pair[1]
		}
		history = append(history, qa)
	}
	return history, nil
}

// JobDescription fetches the stored job description text for the named
// dataset. The backend has shipped this under several keys over time,
// so all known ones are accepted.
func (c *Client) JobDescription(ctx context.Context, tableName string) (string, error) {
	q := url.Values{"tableName": {tableName}}

	var out map[string]any
	if err := c.getJSON(ctx, "/get-job-description", q, &out); err != nil {
		return "", err
	}

	for _, key := range []string{"job_desc", "result", "description"} {
		if v, ok := out[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, nil
			}
		}
	}
	return "", &ParseError{Endpoint: "/get-job-description", Err: fmt.Errorf("no job description field in response")}
}

// Register creates a backend account. A conflict on user_id surfaces
// as a RemoteError carrying the backend's message.
func (c *Client) Register(ctx context.Context, companyName, userID, password string) error {
	body := map[string]string{
		"company_name": companyName,
		"user_id":      userID,
		"password":     password,
	}

	var out authResponse
	return c.postJSON(ctx, "/register", body, &out)
}

// Login verifies credentials against the backend. It does not mint a
// token; the backend treats a known user_id as identity.
func (c *Client) Login(ctx context.Context, userID, password string) error {
	body := map[string]string{
		"user_id":  userID,
		"password": password,
	}

	var out authResponse
	if err := c.postJSON(ctx, "/login", body, &out); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, endpoint, out)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return c.do(req, endpoint, out)
}

// do executes the request and decodes the JSON response into out.
// Transport failures and non-2xx statuses map to RemoteError; a body
// that fails to decode maps to ParseError.
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &RemoteError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		_ = json.Unmarshal(respBody, &e)
		return &RemoteError{Endpoint: endpoint, Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

func addFilePart(w *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return err
	}
	return nil
}
