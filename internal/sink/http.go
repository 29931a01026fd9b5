package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"quickcap/internal/endpoint"
	"quickcap/internal/logging"
	"quickcap/internal/model"
)

// CaptureIDHeader carries a per-post id so receivers can deduplicate.
const CaptureIDHeader = "X-Capture-Id"

var (
	ErrEmptyURL           = errors.New("URL cannot be empty")
	ErrMissingBearerToken = errors.New("bearer token required for bearer auth")
	ErrMissingBasicAuth   = errors.New("username and password required for basic auth")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d %s", e.Code, http.StatusText(e.Code))
}

// Payload is the JSON body posted to the endpoint.
type Payload struct {
	Timestamp string `json:"timestamp"`
	Body      string `json:"body"`
}

// HTTPSink posts captures as JSON.
type HTTPSink struct {
	client *http.Client
	now    func() time.Time
	newID  func() string
	log    logging.Logger
}

func NewHTTPSink(timeout time.Duration, log logging.Logger) *HTTPSink {
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPSink{
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		log:    log,
	}
}

// WithClient replaces the HTTP client (tests use httptest clients).
func (s *HTTPSink) WithClient(c *http.Client) *HTTPSink {
	if c != nil {
		s.client = c
	}
	return s
}

func (s *HTTPSink) WithClock(now func() time.Time) *HTTPSink {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *HTTPSink) Deliver(ctx context.Context, req Request) error {
	r, ok := req.(*EndpointRequest)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedRequest, req)
	}
	return s.Post(ctx, *r)
}

func (s *HTTPSink) Post(ctx context.Context, req EndpointRequest) error {
	if req.URL == "" {
		return ErrEmptyURL
	}
	u, err := url.Parse(req.URL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("invalid URL %q", req.URL)
	}

	body, err := json.Marshal(Payload{
		Timestamp: s.now().Format(time.RFC3339),
		Body:      req.Content,
	})
	if err != nil {
		return err
	}

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	hr.Header.Set("Content-Type", "application/json")

	switch req.AuthType {
	case model.AuthBearer:
		if req.AuthToken == nil {
			return ErrMissingBearerToken
		}
		hr.Header.Set("Authorization", "Bearer "+*req.AuthToken)
	case model.AuthBasic:
		if req.Username == nil || req.Password == nil {
			return ErrMissingBasicAuth
		}
		hr.SetBasicAuth(*req.Username, *req.Password)
	}

	if req.ExtraHeaders != nil {
		for _, h := range endpoint.ParseExtraHeaders(*req.ExtraHeaders) {
			hr.Header.Set(h.Name, h.Value)
		}
	}

	id := s.newID()
	hr.Header.Set(CaptureIDHeader, id)

	start := s.now()
	resp, err := s.client.Do(hr)
	if err != nil {
		s.log.Warn("endpoint post failed", logging.String("capture_id", id), logging.Error(err))
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	s.log.Info("endpoint post",
		logging.String("capture_id", id),
		logging.String("host", u.Host),
		logging.Int("status", resp.StatusCode),
		logging.Duration("duration", s.now().Sub(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
