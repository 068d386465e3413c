package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"payslip/internal/platform/crypto"
)

// Disk saves documents under Dir. With an enabled sealer the bytes are
// encrypted and the file gets crypto.SealedExt appended.
type Disk struct {
	Dir    string
	Sealer *crypto.Sealer
}

func NewDisk(dir string, sealer *crypto.Sealer) *Disk {
	return &Disk{Dir: dir, Sealer: sealer}
}

// Save writes to a temporary file first so a failed write never leaves a
// partial document behind.
func (d *Disk) Save(ctx context.Context, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}

	if d.Sealer.Enabled() {
		sealed, err := d.Sealer.Seal(data)
		if err != nil {
			return fmt.Errorf("seal %s: %w", filename, err)
		}
		data = sealed
		filename += crypto.SealedExt
	}

	tmp, err := os.CreateTemp(d.Dir, ".payslip-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, d.Path(filename)); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Remove deletes what Save wrote for filename. A missing file is not an
// error.
func (d *Disk) Remove(_ context.Context, filename string) error {
	if d.Sealer.Enabled() {
		filename += crypto.SealedExt
	}
	if err := os.Remove(d.Path(filename)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path is where Save puts filename before any sealing suffix.
func (d *Disk) Path(filename string) string {
	return filepath.Join(d.Dir, filename)
}
