package store

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

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/phanxgames/balloons"
)

// SupabaseConfig holds client configuration.
type SupabaseConfig struct {
	URL    string
	APIKey string
	// Table defaults to Table.
	Table      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Supabase is a Store backed by the Supabase REST (PostgREST) API.
type Supabase struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
	logger     *zap.Logger
}

// APIError is a non-2xx response from PostgREST.
type APIError struct {
	Status  int
	Code    string
	Message string
	Hint    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase: %d: %s", e.Status, e.Message)
}

// NewSupabase creates a Supabase store.
func NewSupabase(cfg SupabaseConfig) (*Supabase, error) {
	if cfg.URL == "" {
		return nil, errors.New("supabase: URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("supabase: APIKey is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	table := cfg.Table
	if table == "" {
		table = Table
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Supabase{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		table:      table,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// insertRow is the column set the composer writes. Font columns are
// nullable and omitted when unset.
type insertRow struct {
	Message    string  `json:"message"`
	Color      string  `json:"color"`
	TextSize   float64 `json:"text_size"`
	TextColor  string  `json:"text_color"`
	FontWeight string  `json:"font_weight,omitempty"`
	FontStyle  string  `json:"font_style,omitempty"`
}

// Add implements Store.
func (s *Supabase) Add(ctx context.Context, d balloons.Draft) (balloons.Item, error) {
	if err := d.Validate(); err != nil {
		return balloons.Item{}, err
	}

	body, err := json.Marshal([]insertRow{{
		Message:    d.Message,
		Color:      d.Color,
		TextSize:   d.TextSize,
		TextColor:  d.TextColor,
		FontWeight: d.FontWeight,
		FontStyle:  d.FontStyle,
	}})
	if err != nil {
		return balloons.Item{}, errors.Wrap(err, "supabase: marshal message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tableURL(), bytes.NewReader(body))
	if err != nil {
		return balloons.Item{}, errors.Wrap(err, "supabase: create request")
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	var items []balloons.Item
	if err := s.do(req, &items); err != nil {
		return balloons.Item{}, errors.Wrap(err, "adding message")
	}
	if len(items) == 0 {
		return balloons.Item{}, errors.New("supabase: insert returned no rows")
	}
	s.logger.Info("message added", zap.String("id", items[0].ID))
	return items[0], nil
}

// List implements Store.
func (s *Supabase) List(ctx context.Context, page Page) ([]balloons.Item, error) {
	page = page.normalize()

	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "created_at.desc")
	params.Set("limit", strconv.Itoa(page.Limit))
	if page.Offset > 0 {
		params.Set("offset", strconv.Itoa(page.Offset))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL()+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "supabase: create request")
	}
	s.setHeaders(req)

	items := []balloons.Item{}
	if err := s.do(req, &items); err != nil {
		return nil, errors.Wrap(err, "getting messages")
	}
	s.logger.Debug("messages listed", zap.Int("count", len(items)), zap.Int("offset", page.Offset))
	return items, nil
}

func (s *Supabase) tableURL() string {
	return fmt.Sprintf("%s/rest/v1/%s", s.baseURL, s.table)
}

func (s *Supabase) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
}

// do sends req and decodes a successful JSON body into out.
func (s *Supabase) do(req *http.Request, out any) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "supabase: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "supabase: read response")
	}

	if resp.StatusCode >= 400 {
		apiErr := parseAPIError(resp.StatusCode, body)
		s.logger.Warn("supabase request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code))
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "supabase: decode response")
	}
	return nil
}

// parseAPIError reads a PostgREST error body. Bodies that are not JSON are
// kept verbatim as the message.
func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	if !gjson.ValidBytes(body) {
		e.Message = strings.TrimSpace(string(body))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
		return e
	}
	res := gjson.ParseBytes(body)
	e.Code = res.Get("code").String()
	e.Message = res.Get("message").String()
	e.Hint = res.Get("hint").String()
	if e.Message == "" {
		// Auth errors use "msg" or "error" instead.
		e.Message = res.Get("msg").String()
	}
	if e.Message == "" {
		e.Message = res.Get("error").String()
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
