package workflow

import "fmt"

const (
	MessageValidationFailed = "Validation failed"
	MessageMissingActor     = "Admin ID not found in token"
	MessageForbidden        = "You do not have permission to perform this action"
	MessageUnexpected       = "An error occurred while processing the request"
)

// Action describes one kind of administrative mutation: its audit tag,
// the entity category it touches and the fixed response vocabulary.
type Action struct {
	Name           string
	TargetType     string
	SuccessMessage string
	FailureMessage string
	// NotFoundMessage defaults to "<TargetType> not found".
	NotFoundMessage string
}

func (a Action) message(k Kind) string {
	switch k {
	case KindSuccess:
		return a.SuccessMessage
	case KindValidation:
		return MessageValidationFailed
	case KindUnauthenticated:
		return MessageMissingActor
	case KindForbidden:
		return MessageForbidden
	case KindNotFound:
		if a.NotFoundMessage != "" {
			return a.NotFoundMessage
		}
		return fmt.Sprintf("%s not found", a.TargetType)
	case KindFailed:
		return a.FailureMessage
	default:
		return MessageUnexpected
	}
}
