package store

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/vit0-9/link_redirector/models"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	restPath           = "/rest/v1/"
	maxBodyBytes       = 1 << 20
)

// PostgRESTStore reads the short-link table through a Supabase (PostgREST)
// REST endpoint.
type PostgRESTStore struct {
	baseURL   *url.URL
	apiKey    string
	table     string
	keyColumn string
	client    *http.Client
}

// NewPostgRESTStore creates the store with one shared HTTP client. The
// per-request deadline comes from the caller's context; timeout is only the
// transport ceiling.
func NewPostgRESTStore(projectURL, apiKey, table, keyColumn string, timeout time.Duration) (*PostgRESTStore, error) {
	if projectURL == "" || apiKey == "" {
		return nil, errors.New("postgrest store needs a project URL and an API key")
	}
	base, err := url.Parse(strings.TrimRight(projectURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse project URL")
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.Errorf("project URL %q must be http or https", projectURL)
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &PostgRESTStore{
		baseURL:   base,
		apiKey:    apiKey,
		table:     table,
		keyColumn: keyColumn,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			// The store never redirects; a 3xx here is a misconfigured URL.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

func (s *PostgRESTStore) tableURL(query url.Values) string {
	u := *s.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + restPath + s.table
	u.RawQuery = query.Encode()
	return u.String()
}

func (s *PostgRESTStore) get(ctx context.Context, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL(query), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "query table %s", s.table)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("query table %s: unexpected status %s", s.table, resp.Status)
	}
	return body, nil
}

// FindBySlug implements Store.
func (s *PostgRESTStore) FindBySlug(ctx context.Context, slug string) (*models.RedirectRecord, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set(s.keyColumn, "eq."+slug)
	query.Set("limit", "1")

	body, err := s.get(ctx, query)
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, errors.Wrap(err, "decode rows")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return recordFromRow(rows[0]), nil
}

// Ping asks for zero rows of the table, which exercises auth and routing.
func (s *PostgRESTStore) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("select", s.keyColumn)
	query.Set("limit", "0")
	_, err := s.get(ctx, query)
	return err
}

func (s *PostgRESTStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
