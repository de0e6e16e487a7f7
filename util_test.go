package configr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCreateExclusive(t *testing.T) {
	data := []byte("bot_username = 'bot'\n")

	t.Run("creates new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		created, err := createExclusive(path, data)
		if err != nil {
			t.Fatalf("createExclusive returned error: %v", err)
		}
		if !created {
			t.Fatalf("created = false, want true")
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if string(got) != string(data) {
			t.Fatalf("file = %q, want %q", got, data)
		}
		entries, err := os.ReadDir(filepath.Dir(path))
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("temp file left behind: %v", entries)
		}
	})

	t.Run("keeps existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(path, []byte("port = 1\n"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		created, err := createExclusive(path, data)
		if err != nil {
			t.Fatalf("createExclusive returned error: %v", err)
		}
		if created {
			t.Fatalf("created = true, want false")
		}
		got, _ := os.ReadFile(path)
		if string(got) != "port = 1\n" {
			t.Fatalf("existing file overwritten: %q", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", FileName)
		created, err := createExclusive(path, data)
		if !errors.Is(err, ErrWrite) {
			t.Fatalf("createExclusive error = %v, want ErrWrite", err)
		}
		if created {
			t.Fatalf("created = true alongside error")
		}
	})
}

func TestWriteExclusive(t *testing.T) {
	data := []byte("channel = '#general'\n")

	t.Run("creates new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		created, err := writeExclusive(path, data)
		if err != nil {
			t.Fatalf("writeExclusive returned error: %v", err)
		}
		if !created {
			t.Fatalf("created = false, want true")
		}
		got, _ := os.ReadFile(path)
		if string(got) != string(data) {
			t.Fatalf("file = %q, want %q", got, data)
		}
	})

	t.Run("existing path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(path, []byte("port = 1\n"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		created, err := writeExclusive(path, data)
		if err != nil || created {
			t.Fatalf("writeExclusive = %v, %v; want false, nil", created, err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "port = 1\n" {
			t.Fatalf("existing file overwritten: %q", got)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", FileName)
		created, err := writeExclusive(path, data)
		if !errors.Is(err, ErrWrite) {
			t.Fatalf("writeExclusive error = %v, want ErrWrite", err)
		}
		if created {
			t.Fatalf("created = true alongside error")
		}
	})
}

func TestEnsurePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", FileName)
	for i := 0; i < 2; i++ {
		if err := EnsurePath(path); err != nil {
			t.Fatalf("EnsurePath call %d returned error: %v", i, err)
		}
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Fatalf("parent dir not created: %v", err)
	}
}
