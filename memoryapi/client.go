package memoryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every backend request made by HTTPClient.
const DefaultTimeout = 30 * time.Second

// HTTPClient implements Client against a REST-style memory backend.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPClient returns a client for the backend at baseURL authenticating
// with apiKey.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// CreateMemory stores one memory under the given container tag.
func (c *HTTPClient) CreateMemory(ctx context.Context, content, tag, memType string) (*Memory, error) {
	body := map[string]any{
		"content":      content,
		"containerTag": tag,
	}
	if memType != "" {
		body["type"] = memType
	}

	var memory Memory
	if err := c.do(ctx, http.MethodPost, "/v1/memories", body, &memory); err != nil {
		return nil, err
	}
	return &memory, nil
}

// ListMemories returns up to limit memories for a container tag.
func (c *HTTPClient) ListMemories(ctx context.Context, tag string, limit int) ([]Memory, error) {
	q := url.Values{}
	q.Set("containerTag", tag)
	q.Set("limit", strconv.Itoa(limit))

	var out struct {
		Memories []Memory `json:"memories"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/memories?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Memories, nil
}

// ForgetMemory permanently deletes a memory by ID.
func (c *HTTPClient) ForgetMemory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/memories/"+url.PathEscape(id), nil, nil)
}

// Search retrieves memories matching query across the given tags.
func (c *HTTPClient) Search(ctx context.Context, query string, tags []string, limit int, mode SearchMode) ([]Memory, error) {
	body := map[string]any{
		"query":         query,
		"containerTags": tags,
		"limit":         limit,
		"mode":          mode,
	}

	var out struct {
		Results []Memory `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/search", body, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// ComputeProfile builds the narrative profile for a container tag.
func (c *HTTPClient) ComputeProfile(ctx context.Context, tag string, opts ProfileOptions) (*Profile, error) {
	body := map[string]any{
		"containerTag":       tag,
		"includePreferences": opts.IncludePreferences,
	}

	var profile Profile
	if err := c.do(ctx, http.MethodPost, "/v1/profile", body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CreateDocument submits a document for asynchronous ingestion.
func (c *HTTPClient) CreateDocument(ctx context.Context, content, tag string, opts DocumentOptions) (*IngestionJob, error) {
	body := map[string]any{
		"content":      content,
		"containerTag": tag,
	}
	if opts.Filename != "" {
		body["filename"] = opts.Filename
	}

	var job IngestionJob
	if err := c.do(ctx, http.MethodPost, "/v1/documents", body, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetIngestionStatus fetches the current state of an ingestion job.
func (c *HTTPClient) GetIngestionStatus(ctx context.Context, ingestionID string) (*IngestionJob, error) {
	var job IngestionJob
	if err := c.do(ctx, http.MethodGet, "/v1/ingestions/"+url.PathEscape(ingestionID), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// IngestConversation submits conversation turns for storage under the given
// tag, attributed to a session.
func (c *HTTPClient) IngestConversation(ctx context.Context, messages []ConversationMessage, tag, sessionID, memType string) error {
	body := map[string]any{
		"messages":     messages,
		"containerTag": tag,
		"sessionId":    sessionID,
	}
	if memType != "" {
		body["type"] = memType
	}
	return c.do(ctx, http.MethodPost, "/v1/conversations", body, nil)
}

// do executes one backend request. A non-nil out is filled from the JSON
// response body; error responses surface status and body text.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("backend request failed: %s %s: %s - %s", method, path, resp.Status, string(text))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
