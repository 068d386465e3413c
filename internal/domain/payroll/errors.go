package payroll

import "errors"

var (
	ErrConfigNotFound      = errors.New("payroll config not found")
	ErrFormulaSyntax       = errors.New("invalid formula")
	ErrFormulaDivideByZero = errors.New("formula divides by zero")
)
