package storage

import (
	"context"
	"errors"
	"fmt"

	"payslip/internal/domain/payslip"
)

// Remover is a saver whose output can be taken back.
type Remover interface {
	Remove(ctx context.Context, filename string) error
}

// Multi hands the document to each saver in order and stops at the first
// failure. Savers that already succeeded and implement Remover are rolled
// back, newest first; anything else, such as a sent mail, stays delivered.
type Multi []payslip.Saver

func (m Multi) Save(ctx context.Context, filename string, data []byte) error {
	for i, saver := range m {
		if err := saver.Save(ctx, filename, data); err != nil {
			return errors.Join(err, m[:i].rollback(filename))
		}
	}
	return nil
}

func (m Multi) rollback(filename string) error {
	var errs []error
	for i := len(m) - 1; i >= 0; i-- {
		r, ok := m[i].(Remover)
		if !ok {
			continue
		}
		// The request context may be what failed the save.
		if err := r.Remove(context.Background(), filename); err != nil {
			errs = append(errs, fmt.Errorf("roll back %s: %w", filename, err))
		}
	}
	return errors.Join(errs...)
}
