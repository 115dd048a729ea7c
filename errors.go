package singleton

import (
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrRedeclared   = errors.New("singleton already declared")
	ErrPoisoned     = errors.New("singleton poisoned by failed initialization")
	ErrBorrowed     = errors.New("value is already borrowed")
	ErrMutBorrowed  = errors.New("value is already mutably borrowed")
	ErrReleased     = errors.New("borrow already released")
	ErrInvalidLevel = errors.New("log level must be debug, info, warn or error")
)

// InitError reports a panic raised by an initializer. The trace points at
// the panic site; print it with %+v.
type InitError struct {
	Value interface{}

	traced error
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func newInitError(r interface{}) *InitError {
	var traced error
	if err, ok := r.(error); ok {
		traced = pkgerrors.WithStack(err)
	} else {
		traced = pkgerrors.Errorf("%v", r)
	}

	return &InitError{Value: r, traced: traced}
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializer panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is an error, so errors.Is and
// errors.As see through initializers that panic(err).
func (e *InitError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func (e *InitError) StackTrace() pkgerrors.StackTrace {
	if st, ok := e.traced.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

func (e *InitError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, e.Error())
			e.StackTrace().Format(s, verb)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

func CheckPoisoned(err error) bool {
	return errors.Is(err, ErrPoisoned)
}

func CheckInitPanic(err error) bool {
	var initErr *InitError
	return errors.As(err, &initErr)
}
