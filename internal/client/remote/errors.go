package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable covers transport failures: unreachable host, dropped
	// connection, expired deadline.
	ErrUnavailable = errors.New("remote unavailable")
	// ErrUnauthorized is returned when the backend rejects the credentials.
	ErrUnauthorized = errors.New("remote unauthorized")
	// ErrSchemaAbsent means the table or column does not exist remotely yet.
	ErrSchemaAbsent = errors.New("remote schema absent")
	// ErrDecode is returned when a response body cannot be parsed.
	ErrDecode = errors.New("remote decode failed")
	// ErrUnfiltered guards against table-wide update or delete.
	ErrUnfiltered = errors.New("remote write without filter")
)

// Error is a failure reported by the backend itself. Unwrap yields the
// class sentinel (ErrUnauthorized, ErrSchemaAbsent) when one applies.
type Error struct {
	Status  int
	Code    string
	Message string

	class error
}

func (e *Error) Error() string {
	switch {
	case e.Code != "" && e.Status != 0:
		return fmt.Sprintf("remote error %d (%s): %s", e.Status, e.Code, e.Message)
	case e.Code != "":
		return fmt.Sprintf("remote error (%s): %s", e.Code, e.Message)
	default:
		return fmt.Sprintf("remote error %d: %s", e.Status, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.class }

// schemaCodes are PostgREST and Postgres codes for a missing relation or
// column.
var schemaCodes = map[string]bool{
	"PGRST205": true, // table not found in schema cache
	"PGRST204": true, // column not found in schema cache
	"42P01":    true, // undefined_table
	"42703":    true, // undefined_column
}

// authCodes are Postgres codes for rejected credentials or privileges.
var authCodes = map[string]bool{
	"28000": true, // invalid_authorization_specification
	"28P01": true, // invalid_password
	"42501": true, // insufficient_privilege
}

// NewError builds an Error and assigns its class from the status and code.
func NewError(status int, code, message string) *Error {
	e := &Error{Status: status, Code: code, Message: message}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden || authCodes[code]:
		e.class = ErrUnauthorized
	case status == http.StatusNotFound || schemaCodes[code]:
		e.class = ErrSchemaAbsent
	}
	return e
}

func unavailable(op, table string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, table, ErrUnavailable, err)
}
