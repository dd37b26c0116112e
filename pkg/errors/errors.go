package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidQuantity    Code = "INVALID_QUANTITY"
	CodeInvalidPrice       Code = "INVALID_PRICE"
	CodeUnknownCurrency    Code = "UNKNOWN_CURRENCY"
	CodePersistenceFailure Code = "PERSISTENCE_FAILURE"
	CodeDataError          Code = "DATA_ERROR"
	CodeLimitReached       Code = "LIMIT_REACHED"
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeDependency         Code = "DEPENDENCY_ERROR"
)

// Severity tells collaborators how to surface a failure.
type Severity string

const (
	// SeverityAdvisory failures are shown to the shopper as a notification.
	SeverityAdvisory Severity = "advisory"
	// SeverityDegraded failures leave the session usable but not durable.
	SeverityDegraded Severity = "degraded"
	// SeverityFault failures indicate bad data or a programming error.
	SeverityFault Severity = "fault"
)

type Metadata struct {
	Severity       Severity
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Severity:       SeverityAdvisory,
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		Severity:       SeverityAdvisory,
		Retryable:      false,
		PublicMessage:  "resource not found",
		DetailsAllowed: false,
	},
	CodeInvalidQuantity: {
		Severity:       SeverityAdvisory,
		Retryable:      false,
		PublicMessage:  "quantity must be a positive whole number",
		DetailsAllowed: true,
	},
	CodeInvalidPrice: {
		Severity:       SeverityAdvisory,
		Retryable:      false,
		PublicMessage:  "price must be greater than zero",
		DetailsAllowed: true,
	},
	CodeUnknownCurrency: {
		Severity:       SeverityAdvisory,
		Retryable:      false,
		PublicMessage:  "currency not supported",
		DetailsAllowed: true,
	},
	CodePersistenceFailure: {
		Severity:       SeverityDegraded,
		Retryable:      true,
		PublicMessage:  "changes could not be saved on this device",
		DetailsAllowed: false,
	},
	CodeDataError: {
		Severity:       SeverityFault,
		Retryable:      false,
		PublicMessage:  "catalog data is inconsistent",
		DetailsAllowed: true,
	},
	CodeLimitReached: {
		Severity:       SeverityAdvisory,
		Retryable:      false,
		PublicMessage:  "limit reached",
		DetailsAllowed: true,
	},
	CodeInternal: {
		Severity:       SeverityFault,
		Retryable:      true,
		PublicMessage:  "internal error",
		DetailsAllowed: false,
	},
	CodeDependency: {
		Severity:       SeverityDegraded,
		Retryable:      true,
		PublicMessage:  "dependency unavailable",
		DetailsAllowed: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
