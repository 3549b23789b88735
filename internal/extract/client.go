package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobradar/internal/domain/job"
)

// ExtractionError reports that the AI service was unavailable or
// returned a malformed response. Callers recover via the local
// heuristic; it never blocks matching.
type ExtractionError struct {
	Status int
	Err    error
}

func (e *ExtractionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status > 0 {
		return fmt.Sprintf("extraction service: status %d", e.Status)
	}
	return fmt.Sprintf("extraction service: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Client is the black-box AI text service: skills out of free text,
// cover letters out of a profile and a job. Consumed, not produced.
type Client interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
	GenerateCoverLetter(ctx context.Context, profileSkills []string, j job.Record) (string, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewClient returns nil when no base URL is configured; callers treat
// a nil client as "heuristic only".
func NewClient(baseURL string, timeout time.Duration) Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type extractSkillsRequest struct {
	Text string `json:"text"`
}

type extractSkillsResponse struct {
	Skills []string `json:"skills"`
}

type coverLetterRequest struct {
	Skills      []string `json:"skills"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
}

type coverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
}

func (c *httpClient) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	var out extractSkillsResponse
	if err := c.post(ctx, "/extract", extractSkillsRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	skills := make([]string, 0, len(out.Skills))
	for _, s := range out.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}
	if len(skills) == 0 {
		return nil, &ExtractionError{Err: errors.New("empty skill set")}
	}
	return skills, nil
}

func (c *httpClient) GenerateCoverLetter(ctx context.Context, profileSkills []string, j job.Record) (string, error) {
	req := coverLetterRequest{
		Skills:      profileSkills,
		Title:       j.Title,
		Company:     j.Company,
		Description: j.Description,
	}
	var out coverLetterResponse
	if err := c.post(ctx, "/cover-letter", req, &out); err != nil {
		return "", err
	}
	letter := strings.TrimSpace(out.CoverLetter)
	if letter == "" {
		return "", &ExtractionError{Err: errors.New("empty cover letter")}
	}
	return letter, nil
}

func (c *httpClient) post(ctx context.Context, path string, in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return &ExtractionError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return &ExtractionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &ExtractionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &ExtractionError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ExtractionError{Err: err}
	}
	return nil
}

var _ Client = (*httpClient)(nil)
