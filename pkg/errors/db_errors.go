package custom_error

import "fmt"

type CustomError interface {
	Error() string
}

// UniqueViolationError surfaces a postgres 23505, e.g. a donor responding
// to the same request twice.
type UniqueViolationError struct {
	message string
	code    string
}

// ForeignKeyViolationError surfaces a postgres 23503, e.g. deleting a donor
// who still has responses on record.
type ForeignKeyViolationError struct {
	message string
	code    string
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (postgres code %s)", f.message, f.code)
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (postgres code %s)", e.message, e.code)
}

// WrapDBError maps a postgres error code onto a typed error the handlers
// can pick apart with errors.As.
func WrapDBError(message, code string) CustomError {
	switch code {
	case "23505":
		return &UniqueViolationError{
			message: "duplicate value for " + message,
			code:    code,
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: message + " is still referenced by other records",
			code:    code,
		}
	default:
		return fmt.Errorf("unclassified database error %s: %s", code, message)
	}
}
