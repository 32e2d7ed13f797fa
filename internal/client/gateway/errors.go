package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a failed gateway call.
type Kind int

const (
	// KindNetwork: no response was obtained.
	KindNetwork Kind = iota + 1
	// KindServer: a non-2xx response other than 401.
	KindServer
	// KindAuthExpired: a 401 response. The gateway has already purged the
	// token and notified the expiry handler.
	KindAuthExpired
	// KindStructural: a response that violates the expected contract.
	KindStructural
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindAuthExpired:
		return "auth_expired"
	case KindStructural:
		return "structural"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels matched by *Error through errors.Is.
var (
	ErrNetwork     = errors.New("network error")
	ErrServer      = errors.New("server error")
	ErrAuthExpired = errors.New("session expired")
	ErrStructural  = errors.New("invalid response structure")
)

// DefaultMessage is used when neither the server nor the transport supplied one.
const DefaultMessage = "Something went wrong"

// Error is the only error type returned by the gateway. Message is always
// human readable and safe to show.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return DefaultMessage
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrServer:
		return e.Kind == KindServer
	case ErrAuthExpired:
		return e.Kind == KindAuthExpired
	case ErrStructural:
		return e.Kind == KindStructural
	}
	return false
}

// StructuralError reports a 2xx response missing required data.
func StructuralError(msg string) *Error {
	return &Error{Kind: KindStructural, Message: msg}
}

// AsError unwraps err to a gateway *Error.
func AsError(err error) (*Error, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// Message returns the user-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if ge, ok := AsError(err); ok {
		return ge.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultMessage
}
