package hub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"EuroparlScraper/internal/domain"
	"EuroparlScraper/internal/ports"
)

// Publisher uploads datasets to a Hugging Face dataset repository: it
// ensures the repo exists, then commits the records as a JSON-lines file.
// Publish failures are surfaced as-is; the caller decides what to do.
type Publisher struct {
	http     *resty.Client
	username string
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher builds a hub client with bearer authentication. The token
// lives only inside the HTTP client and never appears in logs or errors.
func NewPublisher(endpoint, username, token string) *Publisher {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(endpoint, "/"))
	client.SetAuthToken(token)
	client.SetTimeout(60 * time.Second)
	client.SetHeader("User-Agent", "EuroparlScraper/1.0")

	return &Publisher{http: client, username: username}
}

// Publish creates the dataset repository when missing and commits data.jsonl
// to its main branch. An empty record set is rejected rather than wiping a
// published dataset.
func (p *Publisher) Publish(ctx context.Context, repoName string, records []domain.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("refusing to publish an empty dataset to %s", repoName)
	}

	if err := p.ensureRepo(ctx, repoName); err != nil {
		return err
	}

	payload, err := commitPayload(records)
	if err != nil {
		return err
	}

	repoID := p.username + "/" + repoName
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-ndjson").
		SetBody(payload).
		Post(fmt.Sprintf("/api/datasets/%s/commit/main", repoID))
	if err != nil {
		return fmt.Errorf("commit dataset %s: %w", repoID, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("hub commit to %s failed %s: %s", repoID, resp.Status(), truncate(resp.String(), 256))
	}

	return nil
}

// ensureRepo creates the dataset repo; an already-existing repo (409) is
// not an error.
func (p *Publisher) ensureRepo(ctx context.Context, repoName string) error {
	resp, err := p.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"type":    "dataset",
			"name":    repoName,
			"private": false,
		}).
		Post("/api/repos/create")
	if err != nil {
		return fmt.Errorf("create dataset repo %s: %w", repoName, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest && resp.StatusCode() != http.StatusConflict {
		return fmt.Errorf("hub repo create %s failed %s: %s", repoName, resp.Status(), truncate(resp.String(), 256))
	}

	return nil
}

type row struct {
	URL    string `json:"url"`
	Date   string `json:"date"`
	Text   string `json:"text"`
	Source string `json:"source"`
}

// commitPayload builds the NDJSON commit body: a header line followed by
// the base64-encoded data.jsonl file, one record object per line.
func commitPayload(records []domain.Record) (string, error) {
	var data strings.Builder
	enc := json.NewEncoder(&data)
	for _, r := range records {
		if err := enc.Encode(row{URL: r.URL, Date: r.Date, Text: r.Text, Source: r.Source}); err != nil {
			return "", fmt.Errorf("encode record %s: %w", r.URL, err)
		}
	}

	var payload strings.Builder
	enc = json.NewEncoder(&payload)

	header := map[string]any{
		"key":   "header",
		"value": map[string]string{"summary": "Update scraped archive dataset"},
	}
	if err := enc.Encode(header); err != nil {
		return "", fmt.Errorf("encode commit header: %w", err)
	}

	file := map[string]any{
		"key": "file",
		"value": map[string]string{
			"path":     "data.jsonl",
			"content":  base64.StdEncoding.EncodeToString([]byte(data.String())),
			"encoding": "base64",
		},
	}
	if err := enc.Encode(file); err != nil {
		return "", fmt.Errorf("encode commit file: %w", err)
	}

	return payload.String(), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[:n]
	}
	return s
}
