package translator

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorKind is the closed failure taxonomy. Exactly one kind is reported per
// failed session.
type ErrorKind string

const (
	KindOffline       ErrorKind = "OFFLINE"
	KindQuotaExceeded ErrorKind = "QUOTA_EXCEEDED"
	KindConfigError   ErrorKind = "CONFIG_ERROR"
	KindSafetyBlock   ErrorKind = "SAFETY_BLOCK"
	KindEmptyResponse ErrorKind = "EMPTY_RESPONSE"
	KindParseError    ErrorKind = "PARSE_ERROR"
	KindUnknown       ErrorKind = "UNKNOWN_ERROR"
)

// SessionError is the terminal error of a failed session.
type SessionError struct {
	Kind ErrorKind
	Err  error
}

func (e *SessionError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// KindOf extracts the ErrorKind from a session error, or KindUnknown for any
// other error.
func KindOf(err error) ErrorKind {
	var se *SessionError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// Classify maps a transport or model failure into an ErrorKind. Rule order
// matters: quota signals are checked before credential signals, credential
// signals before safety signals, and anything unrecognized falls through to
// KindUnknown. Offline, empty-response and parse failures are assigned by the
// session itself before the transport error ever reaches this function.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var se *SessionError
	if errors.As(err, &se) {
		return se.Kind
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			return KindQuotaExceeded
		case 401, 403:
			return KindConfigError
		}
	}

	msg := strings.ToLower(err.Error())

	switch {
	case hasAny(msg, "429", "quota", "rate limit", "resource_exhausted", "resource exhausted"):
		return KindQuotaExceeded
	case hasAny(msg, "401", "403", "api key", "api_key", "unauthenticated", "permission denied", "invalid credential"):
		return KindConfigError
	case hasAny(msg, "safety", "blocked", "content policy", "refused", "prohibited"):
		return KindSafetyBlock
	default:
		return KindUnknown
	}
}

func hasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func failure(kind ErrorKind, err error) *SessionError {
	return &SessionError{Kind: kind, Err: err}
}
