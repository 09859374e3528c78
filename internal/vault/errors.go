package vault

import "fmt"

// Error is a coded domain error. The code surfaces as err_code in handler
// summary logs and lets the transport map failures to user-facing replies.
type Error struct {
	code string
	msg  string
}

// Error returns the human-readable message.
func (e *Error) Error() string { return e.msg }

// Code returns the stable machine-readable error code.
func (e *Error) Code() string { return e.code }

var (
	// ErrNotFound indicates an absent category or an out-of-range note index.
	ErrNotFound = &Error{code: "not_found", msg: "category or note not found"}
	// ErrProtectedCategory indicates an attempt to delete the "all" category.
	ErrProtectedCategory = &Error{code: "protected_category", msg: "the all category cannot be deleted"}
	// ErrInvalidFormat indicates edit-note input that does not match "#tag number".
	ErrInvalidFormat = &Error{code: "invalid_format", msg: "expected format: #category number"}
	// ErrNoPendingNote indicates a commit without an active selection session,
	// typically a duplicate button press. Not fatal.
	ErrNoPendingNote = &Error{code: "no_pending_note", msg: "no pending note to save"}
	// ErrCollaborator wraps persistence failures reported upward by the state
	// repository. Never swallowed, never produced by the core itself.
	ErrCollaborator = &Error{code: "collaborator_failure", msg: "state repository failure"}
)

func collaboratorErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCollaborator, op, err)
}
