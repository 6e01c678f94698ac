package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies swap errors so callers can map them to retry
// decisions and HTTP status codes without string matching.
type ErrorKind string

const (
	// KindValidation indicates bad or missing caller input. Fatal to the
	// request, never retried.
	KindValidation ErrorKind = "VALIDATION"

	// KindUnresolvedToken indicates no default token exists for a chain
	// when the token address was omitted.
	KindUnresolvedToken ErrorKind = "UNRESOLVED_TOKEN"

	// KindQuoteFetch indicates an upstream failure while fetching a quote.
	KindQuoteFetch ErrorKind = "QUOTE_FETCH"

	// KindSubmission indicates an upstream failure while submitting an
	// order. The amount may already be escrowed on-chain, so submission is
	// never blindly retried.
	KindSubmission ErrorKind = "SUBMISSION"

	// KindStatusFetch indicates an upstream failure while polling order
	// status.
	KindStatusFetch ErrorKind = "STATUS_FETCH"

	// KindSignature indicates a malformed signature or a recovered address
	// that does not match the expected wallet.
	KindSignature ErrorKind = "SIGNATURE"

	// KindReplay indicates a stale or future timestamp, or a preparation
	// hash that was not found or already consumed.
	KindReplay ErrorKind = "REPLAY"

	// KindWalletMismatch indicates the submit-time wallet differs from the
	// prepare-time wallet.
	KindWalletMismatch ErrorKind = "WALLET_MISMATCH"
)

// SwapError is the structured error surfaced by every swap component.
type SwapError struct {
	Kind    ErrorKind
	Message string

	// UpstreamStatus and UpstreamBody carry the raw upstream response for
	// transport failures (quote fetch, submission, status fetch).
	UpstreamStatus int
	UpstreamBody   string

	Err error
}

func (e *SwapError) Error() string {
	if e.UpstreamStatus != 0 {
		return fmt.Sprintf("%s: %s (upstream status %d: %s)", e.Kind, e.Message, e.UpstreamStatus, e.UpstreamBody)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SwapError) Unwrap() error {
	return e.Err
}

// NewError creates a SwapError with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *SwapError {
	return &SwapError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a SwapError wrapping an underlying cause.
func WrapError(kind ErrorKind, err error, format string, args ...any) *SwapError {
	return &SwapError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// NewUpstreamError creates a SwapError carrying the upstream HTTP status and
// response body.
func NewUpstreamError(kind ErrorKind, status int, body string, format string, args ...any) *SwapError {
	return &SwapError{
		Kind:           kind,
		Message:        fmt.Sprintf(format, args...),
		UpstreamStatus: status,
		UpstreamBody:   body,
	}
}

// IsKind reports whether err is (or wraps) a SwapError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *SwapError
	if errors.As(err, &se) {
		return se.Kind == kind
	}

	return false
}
