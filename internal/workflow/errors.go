package workflow

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNotFound     = errors.New("target not found")
	ErrForbidden    = errors.New("forbidden")
	ErrActionFailed = errors.New("action failed")
	ErrMissingActor = errors.New("actor id missing")
)

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

type Kind int

const (
	KindSuccess Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindFailed
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindFailed:
		return "failed"
	default:
		return "unexpected"
	}
}

type Decision struct {
	Kind        Kind
	Status      int
	ShouldAudit bool
}

// Classify maps an executor result to a status and an audit obligation.
// Only a nil error is audited.
func Classify(err error) Decision {
	var verr *ValidationError
	switch {
	case err == nil:
		return Decision{Kind: KindSuccess, Status: http.StatusOK, ShouldAudit: true}
	case errors.As(err, &verr):
		return Decision{Kind: KindValidation, Status: http.StatusBadRequest}
	case errors.Is(err, ErrMissingActor):
		return Decision{Kind: KindUnauthenticated, Status: http.StatusUnauthorized}
	case errors.Is(err, ErrForbidden):
		return Decision{Kind: KindForbidden, Status: http.StatusForbidden}
	case errors.Is(err, ErrNotFound):
		return Decision{Kind: KindNotFound, Status: http.StatusNotFound}
	case errors.Is(err, ErrActionFailed):
		return Decision{Kind: KindFailed, Status: http.StatusBadRequest}
	default:
		return Decision{Kind: KindUnexpected, Status: http.StatusInternalServerError}
	}
}
