package payslip

import (
	"errors"
	"fmt"
)

var (
	ErrFormula           = errors.New("standard earnings formula failed")
	ErrUnsupportedFormat = errors.New("unsupported request format")
)

// GenerationError aborts a payslip after the layout is built: the backend
// failed to render it or the document could not be saved. The message keeps
// the underlying error text so it can be shown as is.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("payslip generation failed during %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
