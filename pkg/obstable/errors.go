package obstable

import "errors"

// Sentinels matched by errors.Is against an OpError of the same kind.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrExists        = errors.New("already exists")
	ErrExecution     = errors.New("execution error")
)

// ErrorKind tells the CLI how a failed conversion step should be reported.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExists        ErrorKind = "already_exists"
	KindExecution     ErrorKind = "execution"
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:      ErrNotFound,
	KindInvalidConfig: ErrInvalidConfig,
	KindExists:        ErrExists,
	KindExecution:     ErrExecution,
}

// OpError is returned by the file and action loaders and by Convert.
// Op names the failing step, e.g. "obsfile.read"; Path is the obstable or
// action file involved, if any.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

// Error reads "<op> <path>: <kind>: <cause>", leaving out what is unset.
func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + string(e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel of its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// IsKind reports whether err wraps an OpError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
