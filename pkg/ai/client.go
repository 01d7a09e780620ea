package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/armaan-yadav/apna-resume/internal/model"
)

// ErrEmptySuggestion is returned when the ai-service answers without usable text.
var ErrEmptySuggestion = errors.New("ai-service returned an empty suggestion")

// Client calls the ai-service chat endpoint to draft resume text.
type Client struct {
	BaseURL         string
	HTTP            *http.Client
	DefaultLanguage string
	Logger          *slog.Logger

	// Attempts is the number of tries for a failed request; backoff doubles
	// from one second between tries.
	Attempts int
	Backoff  time.Duration
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "http://ai-service:8000"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		BaseURL:         strings.TrimRight(baseURL, "/"),
		HTTP:            &http.Client{Timeout: 60 * time.Second},
		DefaultLanguage: "English",
		Logger:          logger,
		Attempts:        3,
		Backoff:         time.Second,
	}
}

// doPostWithRetry performs an HTTP POST to the given path with retry/backoff.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := c.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		// exponential backoff before retrying
		if i < attempts-1 {
			backoff := c.Backoff * time.Duration(1<<i)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// chat sends input to /v1/chat and returns the agent output.
func (c *Client) chat(ctx context.Context, input string) (string, error) {
	b, err := json.Marshal(map[string]interface{}{"agent": "auto", "input": input})
	if err != nil {
		return "", err
	}
	resp, err := c.doPostWithRetry(ctx, "/v1/chat", b)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		c.Logger.Warn("ai-service error", "status", resp.StatusCode, "body", truncate(string(respBytes), 200))
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}

	var chatResp struct {
		Agent  string `json:"agent"`
		Output string `json:"output"`
	}
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", err
	}
	return chatResp.Output, nil
}

// decodeOutput parses a JSON object from output, tolerating prose or code
// fences around it.
func decodeOutput(output string, out interface{}) error {
	if err := json.Unmarshal([]byte(output), out); err == nil {
		return nil
	}
	start := strings.IndexByte(output, '{')
	end := strings.LastIndexByte(output, '}')
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(output[start:end+1]), out); err == nil {
			return nil
		}
	}
	return fmt.Errorf("ai-service returned non-json content: %q", truncate(output, 80))
}

// SuggestSummary drafts a professional summary from the rest of doc. The
// suggestion is plain text and is not applied to the document.
func (c *Client) SuggestSummary(ctx context.Context, doc model.Resume) (string, error) {
	payload := map[string]interface{}{
		"jobTitle":   doc.JobTitle,
		"experience": summarizeExperience(doc.Experience),
		"education":  doc.Education,
		"skills":     doc.Skills,
	}
	ctxJSON, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("Write a professional resume summary in %s, 150-300 characters, first person implied, no buzzword lists. "+
		"Return ONLY a JSON object {\"summary\": string}.\n\nResume:\n%s", c.DefaultLanguage, ctxJSON)

	output, err := c.chat(ctx, prompt)
	if err != nil {
		return "", err
	}
	var res struct {
		Summary string `json:"summary"`
	}
	if err := decodeOutput(output, &res); err != nil {
		return "", err
	}
	if s := strings.TrimSpace(res.Summary); s != "" {
		return s, nil
	}
	return "", ErrEmptySuggestion
}

// SuggestWorkSummary drafts bullet points for one experience entry as an
// HTML list. Callers must pass the result through the rich-text sanitizer.
func (c *Client) SuggestWorkSummary(ctx context.Context, exp model.Experience) (string, error) {
	expJSON, err := json.Marshal(exp)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("Write 3 to 5 achievement-focused bullet points in %s for this role. "+
		"Return ONLY a JSON object {\"workSummary\": string} where the value is an HTML <ul> list.\n\nRole:\n%s",
		c.DefaultLanguage, expJSON)

	output, err := c.chat(ctx, prompt)
	if err != nil {
		return "", err
	}
	var res struct {
		WorkSummary string `json:"workSummary"`
	}
	if err := decodeOutput(output, &res); err != nil {
		return "", err
	}
	if s := strings.TrimSpace(res.WorkSummary); s != "" {
		return s, nil
	}
	return "", ErrEmptySuggestion
}

func summarizeExperience(list []model.Experience) []map[string]string {
	out := make([]map[string]string, 0, len(list))
	for _, e := range list {
		out = append(out, map[string]string{"title": e.Title, "company": e.CompanyName})
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
