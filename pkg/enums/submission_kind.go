package enums

import "fmt"

// SubmissionKind identifies which storefront form produced a submission.
type SubmissionKind string

const (
	SubmissionNewsletter SubmissionKind = "newsletter"
	SubmissionContact    SubmissionKind = "contact"
)

var validSubmissionKinds = []SubmissionKind{
	SubmissionNewsletter,
	SubmissionContact,
}

func (k SubmissionKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SubmissionKind.
func (k SubmissionKind) IsValid() bool {
	for _, candidate := range validSubmissionKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSubmissionKind converts the raw string to SubmissionKind.
func ParseSubmissionKind(value string) (SubmissionKind, error) {
	for _, candidate := range validSubmissionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid submission kind %q", value)
}
