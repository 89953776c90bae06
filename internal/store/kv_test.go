package store

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileKVPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.bin")
	kv, err := OpenFileKV(path, quietLog())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := kv.Get("a"); ok {
		t.Fatal("fresh store has data")
	}
	if err := kv.Set("a", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("b", []byte("two")); err != nil {
		t.Fatal(err)
	}
	if err := kv.Delete("b"); err != nil {
		t.Fatal(err)
	}

	again, err := OpenFileKV(path, quietLog())
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := again.Get("a"); !ok || !bytes.Equal(v, []byte("one")) {
		t.Errorf("a = %q, %v", v, ok)
	}
	if _, ok := again.Get("b"); ok {
		t.Error("deleted key came back")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestFileKVCorruptStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.bin")
	if err := os.WriteFile(path, []byte{0xc1, 0x00, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}
	kv, err := OpenFileKV(path, quietLog())
	if err != nil {
		t.Fatalf("corrupt file was fatal: %v", err)
	}
	if _, ok := kv.Get("stats"); ok {
		t.Error("corrupt file produced data")
	}
	if err := kv.Set("stats", []byte{1}); err != nil {
		t.Errorf("write after corrupt load: %v", err)
	}
}

func TestMemKVCopiesValues(t *testing.T) {
	kv := NewMemKV()
	buf := []byte("abc")
	kv.Set("k", buf)
	buf[0] = 'x'
	if v, _ := kv.Get("k"); string(v) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", v)
	}
}
