package razor

import "fmt"

// InternalError reports a broken compiler invariant: the upstream contract
// was violated or a pass produced impossible state. It is never a user
// error. Processing of the current document is aborted; other documents in
// the batch are unaffected.
type InternalError struct {
	// Pass names the pass or component that detected the defect.
	Pass string

	err error
}

func internalf(pass, format string, args ...any) *InternalError {
	return &InternalError{Pass: pass, err: fmt.Errorf(format, args...)}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal compiler error in %s pass: %v", e.Pass, e.err)
}

func (e *InternalError) Unwrap() error {
	return e.err
}
