package submissions

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/luxehair/pkg/config"
	"github.com/angelmondragon/luxehair/pkg/enums"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/validate"
)

// FieldEmail is the form field every newsletter signup must carry.
const FieldEmail = "email"

// Submission is a storefront form post.
type Submission struct {
	Kind   enums.SubmissionKind `json:"kind" validate:"required"`
	Fields map[string]string    `json:"fields" validate:"required,min=1,dive,keys,required,endkeys,max=2000"`
}

// Result reports how a submission settled.
type Result struct {
	Kind        enums.SubmissionKind
	SubmittedAt time.Time
	Err         error
}

// Submitter delivers form submissions without blocking the caller. The
// returned channel yields exactly one Result and is then closed.
type Submitter interface {
	Submit(ctx context.Context, submission Submission) <-chan Result
}

// Validate checks the submission shape. Newsletter signups need an email;
// a contact form email is optional but must be well formed when present.
func (s Submission) Validate() error {
	if !s.Kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown submission kind").
			WithDetails(map[string]string{"kind": s.Kind.String()})
	}
	if err := validate.Struct(s); err != nil {
		return err
	}
	email := strings.TrimSpace(s.Fields[FieldEmail])
	switch {
	case s.Kind == enums.SubmissionNewsletter:
		return validate.Var(email, "required,email")
	case email != "":
		return validate.Var(email, "email")
	}
	return nil
}

// New picks the HTTP submitter when an endpoint is configured and the
// logging no-op otherwise.
func New(cfg config.SubmissionsConfig, logg *logger.Logger) (Submitter, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return NewNoopSubmitter(logg), nil
	}
	submitter, err := NewHTTPSubmitter(endpoint, WithTimeout(cfg.Timeout), WithLogger(logg))
	if err != nil {
		return nil, err
	}
	return submitter, nil
}

func settled(result Result) <-chan Result {
	out := make(chan Result, 1)
	out <- result
	close(out)
	return out
}

// NoopSubmitter accepts valid submissions and only logs them.
type NoopSubmitter struct {
	logg *logger.Logger
	now  func() time.Time
}

func NewNoopSubmitter(logg *logger.Logger) *NoopSubmitter {
	return &NoopSubmitter{logg: logg, now: time.Now}
}

func (n *NoopSubmitter) Submit(ctx context.Context, submission Submission) <-chan Result {
	result := Result{Kind: submission.Kind, SubmittedAt: n.now().UTC()}
	if err := submission.Validate(); err != nil {
		result.Err = err
		return settled(result)
	}
	logCtx := n.logg.WithFields(ctx, map[string]any{
		"kind":   submission.Kind.String(),
		"fields": len(submission.Fields),
	})
	n.logg.Info(logCtx, "submission received without endpoint")
	return settled(result)
}
