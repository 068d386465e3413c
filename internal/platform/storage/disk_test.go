package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"payslip/internal/platform/crypto"
)

func TestDiskSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	disk := NewDisk(dir, nil)

	if err := disk.Save(context.Background(), "salary-slip-Jane Doe-May 2021.pdf", []byte("%PDF")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "salary-slip-Jane Doe-May 2021.pdf"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "%PDF" {
		t.Fatalf("unexpected content %q", got)
	}

	entries, _ := os.ReadDir(dir)
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".payslip-") {
			t.Fatalf("temporary file left behind: %s", entry.Name())
		}
	}
}

func TestDiskSaveSealed(t *testing.T) {
	sealer, err := crypto.New(strings.Repeat("ab", 32))
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	dir := t.TempDir()
	disk := NewDisk(dir, sealer)

	if err := disk.Save(context.Background(), "slip.pdf", []byte("%PDF-1.3")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "slip.pdf")); !os.IsNotExist(err) {
		t.Fatalf("plain file must not exist")
	}
	sealed, err := os.ReadFile(filepath.Join(dir, "slip.pdf"+crypto.SealedExt))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	plain, err := sealer.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(plain) != "%PDF-1.3" {
		t.Fatalf("unexpected content %q", plain)
	}
}

func TestDiskSaveCancelled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewDisk(dir, nil).Save(ctx, "slip.pdf", []byte("x")); err == nil {
		t.Fatal("expected cancelled context to fail")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("nothing should be written")
	}
}

type failingSaver struct{ calls int }

func (f *failingSaver) Save(context.Context, string, []byte) error {
	f.calls++
	return os.ErrPermission
}

func TestMultiStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	first, second := &failingSaver{}, NewDisk(dir, nil)

	err := Multi{first, second}.Save(context.Background(), "slip.pdf", []byte("x"))
	if err == nil || first.calls != 1 {
		t.Fatalf("expected first saver failure, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "slip.pdf")); !os.IsNotExist(err) {
		t.Fatalf("later savers must not run")
	}
}

func TestMultiRollsBackEarlierSaves(t *testing.T) {
	dir := t.TempDir()
	disk, failing := NewDisk(dir, nil), &failingSaver{}

	err := Multi{disk, failing}.Save(context.Background(), "slip.pdf", []byte("x"))
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected the later saver's error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "slip.pdf")); !os.IsNotExist(err) {
		t.Fatalf("expected the disk copy to be removed, stat err: %v", err)
	}
}

func TestDiskRemoveSealed(t *testing.T) {
	dir := t.TempDir()
	sealer, err := crypto.New(strings.Repeat("ab", 32))
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	disk := NewDisk(dir, sealer)
	if err := disk.Save(context.Background(), "slip.pdf", []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := disk.Remove(context.Background(), "slip.pdf"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "slip.pdf"+crypto.SealedExt)); !os.IsNotExist(err) {
		t.Fatalf("expected sealed file removed, stat err: %v", err)
	}
	if err := disk.Remove(context.Background(), "slip.pdf"); err != nil {
		t.Fatalf("removing twice must not fail: %v", err)
	}
}
