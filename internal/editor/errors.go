package editor

import "errors"

var (
	// ErrUnauthorized means the owner credential is invalid or expired; the
	// caller should re-authenticate.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the resume does not exist or is owned by someone else.
	ErrNotFound = errors.New("resume not found")

	// ErrNetwork covers transport failures and server errors.
	ErrNetwork = errors.New("network failure")

	// ErrSuperseded means a newer request of the same kind was issued before
	// this response arrived, so the response was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// IsRecoverable reports whether err is one of the store's retryable failures.
// Every store failure is recoverable; this is false only for nil and for
// errors that did not come from the store.
func IsRecoverable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNetwork),
		errors.Is(err, ErrSuperseded):
		return true
	default:
		return false
	}
}

// classify maps gateway errors onto the store's taxonomy. Anything else,
// including context cancellation, is reported as a network failure.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNetwork):
		return err
	default:
		return errors.Join(ErrNetwork, err)
	}
}
