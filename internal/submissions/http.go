package submissions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/angelmondragon/luxehair/pkg/enums"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
)

const (
	defaultTimeout             = 10 * time.Second
	responseBodyReadLimit int64 = 1024
)

var errEndpointRequired = errors.New("submission endpoint is required")

// HTTPSubmitter posts submissions as JSON to a form backend.
type HTTPSubmitter struct {
	httpClient *http.Client
	endpoint   string
	logg       *logger.Logger
	now        func() time.Time
}

// Option configures optional submitter behavior.
type Option func(*HTTPSubmitter)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPSubmitter) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout on the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(s *HTTPSubmitter) {
		if timeout > 0 {
			s.httpClient.Timeout = timeout
		}
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(s *HTTPSubmitter) {
		s.logg = logg
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *HTTPSubmitter) {
		if now != nil {
			s.now = now
		}
	}
}

// NewHTTPSubmitter builds a submitter for an absolute http(s) endpoint.
func NewHTTPSubmitter(endpoint string, opts ...Option) (*HTTPSubmitter, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, errEndpointRequired
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "submission endpoint must be an absolute http(s) url").
			WithDetails(map[string]string{"endpoint": trimmed})
	}

	submitter := &HTTPSubmitter{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   trimmed,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(submitter)
		}
	}
	return submitter, nil
}

type payload struct {
	Kind        enums.SubmissionKind `json:"kind"`
	Fields      map[string]string    `json:"fields"`
	SubmittedAt time.Time            `json:"submittedAt"`
}

// Submit validates synchronously and posts in the background.
func (s *HTTPSubmitter) Submit(ctx context.Context, submission Submission) <-chan Result {
	result := Result{Kind: submission.Kind, SubmittedAt: s.now().UTC()}
	if err := submission.Validate(); err != nil {
		result.Err = err
		return settled(result)
	}

	out := make(chan Result, 1)
	go func() {
		defer close(out)
		result.Err = s.post(ctx, payload{
			Kind:        submission.Kind,
			Fields:      submission.Fields,
			SubmittedAt: result.SubmittedAt,
		})
		logCtx := s.logg.WithField(ctx, "kind", submission.Kind.String())
		if result.Err != nil {
			s.logg.WarnErr(logCtx, "submission failed", result.Err)
		} else {
			s.logg.Info(logCtx, "submission delivered")
		}
		out <- result
	}()
	return out
}

func (s *HTTPSubmitter) post(ctx context.Context, body payload) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal submission")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(raw))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build submission request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute submission request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "submission rejected")
	}
	return nil
}
