// Package paperless implements the archive client against the Paperless-ngx
// REST API.
package paperless

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	"github.com/poolcost/pool-cost-tracker/internal/models"
	"github.com/poolcost/pool-cost-tracker/internal/platform/config"
)

// Client talks to a Paperless-ngx instance. It implements ports.ArchiveClient.
type Client struct {
	baseURL      string
	token        string
	tagName      string
	pageSize     int
	lookbackDays int
	httpClient   *http.Client
}

// NewClient builds a Client from application configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:      cfg.PaperlessBaseURL,
		tagName:      cfg.ProjectTagName,
		token:        cfg.PaperlessToken,
		pageSize:     cfg.SyncPageSize,
		lookbackDays: cfg.SyncLookbackDays,
		httpClient:   &http.Client{Timeout: cfg.PaperlessTimeout},
	}
}

type pagedResponse struct {
	Count   int               `json:"count"`
	Next    *string           `json:"next"`
	Results []json.RawMessage `json:"results"`
}

type tagResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type namedResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type documentResult struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Created       string          `json:"created"`
	Correspondent json.RawMessage `json:"correspondent"`
	DocumentType  json.RawMessage `json:"document_type"`
	Content       string          `json:"content"`
}

// ResolveTag finds the configured project tag by case-insensitive exact name
// match. A missing tag wraps apperrors.ErrConfiguration.
func (c *Client) ResolveTag(ctx context.Context) (int64, error) {
	page := 1
	for {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", "100")

		var resp pagedResponse
		if err := c.getJSON(ctx, "/api/tags/", query, &resp); err != nil {
			return 0, err
		}
		for _, raw := range resp.Results {
			var tag tagResult
			if err := json.Unmarshal(raw, &tag); err != nil {
				return 0, fmt.Errorf("%w: decoding tag list: %v", apperrors.ErrTransport, err)
			}
			if strings.EqualFold(tag.Name, c.tagName) {
				return tag.ID, nil
			}
		}
		if resp.Next == nil || len(resp.Results) == 0 {
			break
		}
		page++
	}
	return 0, fmt.Errorf("%w: tag %q not found in paperless", apperrors.ErrConfiguration, c.tagName)
}

// ListProjectDocuments pages through all documents carrying the tag, newest
// first, and stops once the lookback window is exhausted. Correspondent and
// document type ids are resolved to names.
func (c *Client) ListProjectDocuments(ctx context.Context, tagID int64) ([]models.ArchiveDocument, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -c.lookbackDays)

	correspondents, err := c.listNames(ctx, "/api/correspondents/")
	if err != nil {
		return nil, err
	}
	documentTypes, err := c.listNames(ctx, "/api/document_types/")
	if err != nil {
		return nil, err
	}

	var docs []models.ArchiveDocument
	page := 1
pages:
	for {
		query := url.Values{}
		query.Set("tags__id__all", strconv.FormatInt(tagID, 10))
		query.Set("ordering", "-created")
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", strconv.Itoa(c.pageSize))

		var resp pagedResponse
		if err := c.getJSON(ctx, "/api/documents/", query, &resp); err != nil {
			return nil, err
		}
		for _, raw := range resp.Results {
			var doc documentResult
			if err := json.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("%w: decoding document list: %v", apperrors.ErrTransport, err)
			}
			created := parseCreated(doc.Created)
			if created != nil && created.Before(cutoff) {
				// Results are newest first, so everything after this
				// point is outside the window.
				break pages
			}
			docs = append(docs, models.ArchiveDocument{
				ID:            doc.ID,
				Title:         strings.TrimSpace(doc.Title),
				Created:       created,
				Correspondent: resolveName(doc.Correspondent, correspondents),
				DocumentType:  resolveName(doc.DocumentType, documentTypes),
				Text:          doc.Content,
			})
		}
		if resp.Next == nil || len(resp.Results) == 0 {
			break
		}
		page++
	}
	return docs, nil
}

// Probe checks reachability of the archive and reports the round-trip time.
func (c *Client) Probe(ctx context.Context) (time.Duration, error) {
	query := url.Values{}
	query.Set("page_size", "1")

	start := time.Now()
	var resp pagedResponse
	if err := c.getJSON(ctx, "/api/tags/", query, &resp); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// listNames fetches an id-to-name lookup from a paginated Paperless list
// endpoint such as /api/correspondents/.
func (c *Client) listNames(ctx context.Context, path string) (map[int64]string, error) {
	names := make(map[int64]string)
	page := 1
	for {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", "100")

		var resp pagedResponse
		if err := c.getJSON(ctx, path, query, &resp); err != nil {
			return nil, err
		}
		for _, raw := range resp.Results {
			var item namedResult
			if err := json.Unmarshal(raw, &item); err != nil {
				return nil, fmt.Errorf("%w: decoding %s: %v", apperrors.ErrTransport, path, err)
			}
			names[item.ID] = item.Name
		}
		if resp.Next == nil || len(resp.Results) == 0 {
			break
		}
		page++
	}
	return names, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: building request for %s: %v", apperrors.ErrTransport, path, err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: requesting %s: %v", apperrors.ErrTransport, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: paperless returned %d for %s: %s", apperrors.ErrTransport, resp.StatusCode, path, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", apperrors.ErrTransport, path, err)
	}
	return nil
}

// resolveName flattens the correspondent / document_type field, which may be
// a bare id, a name string or a nested object depending on API version.
func resolveName(raw json.RawMessage, lookup map[int64]string) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err == nil {
		return lookup[id]
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return strings.TrimSpace(name)
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Name)
	}
	return ""
}

// parseCreated accepts the timestamp formats Paperless has used over time.
func parseCreated(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
