// Package errs defines the failure taxonomy shared by the bot's collaborators.
// Handlers match on Kind to choose between a specific user-facing reply and
// the dispatcher's generic error reply.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUpstream covers network, HTTP and RPC failures against any
	// external service. Never shown to users verbatim.
	KindUpstream Kind = iota + 1
	// KindUnknownCoin means the price service does not recognize the
	// requested coin identifier.
	KindUnknownCoin
	// KindInvalidAddress means a supplied wallet address is malformed.
	KindInvalidAddress
	// KindNoLinkedWallet means a balance command ran for a user with no
	// account on file. Expected state, not an operational failure.
	KindNoLinkedWallet
	// KindPersistence covers account store read/write failures.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindUpstream:
		return "upstream_unavailable"
	case KindUnknownCoin:
		return "unknown_coin"
	case KindInvalidAddress:
		return "invalid_address"
	case KindNoLinkedWallet:
		return "no_linked_wallet"
	case KindPersistence:
		return "persistence_failure"
	default:
		return "unknown"
	}
}

// Error is a typed error carrying a stable kind plus an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the kind from err, or 0 when err carries no taxonomy.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return 0
}

// IsKind reports whether err (or anything it wraps) has the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
