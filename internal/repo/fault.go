package repo

import (
	"errors"
	"fmt"
)

// FaultKind categorizes why a repository operation failed. Callers use
// the kind to pick a user-facing message; the raw cause stays wrapped.
type FaultKind int

const (
	// FaultNoSession means no user is registered yet. The gateway is
	// never invoked in this case.
	FaultNoSession FaultKind = iota

	// FaultTransport covers network-level failures: unreachable host,
	// timeout, interrupted body.
	FaultTransport

	// FaultServerRejected means the backend answered with a
	// non-success status.
	FaultServerRejected

	// FaultDecode means the response arrived but could not be parsed.
	FaultDecode
)

func (k FaultKind) String() string {
	switch k {
	case FaultNoSession:
		return "no_session"
	case FaultTransport:
		return "transport"
	case FaultServerRejected:
		return "server_rejected"
	case FaultDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Fault is the only error type that escapes the repository layer.
type Fault struct {
	Kind FaultKind
	Err  error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	}
	return f.Kind.String()
}

func (f *Fault) Unwrap() error { return f.Err }

// AsFault extracts a *Fault from err's chain.
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsNoSession reports whether err is a no-session fault.
func IsNoSession(err error) bool {
	f, ok := AsFault(err)
	return ok && f.Kind == FaultNoSession
}
