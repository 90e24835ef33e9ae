package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWithPath(t *testing.T) {
	d, err := New("/tmp/lectern-test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if d.Path() != "/tmp/lectern-test" {
		t.Errorf("Path() = %q, want /tmp/lectern-test", d.Path())
	}
	if got := d.ConfigPath(); got != "/tmp/lectern-test/config.yaml" {
		t.Errorf("ConfigPath() = %q", got)
	}
}

func TestNewDefault(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if filepath.Base(d.Path()) != DefaultDirName {
		t.Errorf("default home dir = %q, want base %q", d.Path(), DefaultDirName)
	}
}

func TestEnsureExists(t *testing.T) {
	root := t.TempDir()
	d, err := New(filepath.Join(root, ".lectern"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if d.Exists() {
		t.Fatal("home should not exist yet")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if !d.Exists() {
		t.Error("home should exist after EnsureExists")
	}
	for _, p := range []string{d.CatalogsPath(), d.LogsPath()} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory %s", p)
		}
	}
	if d.ConfigExists() {
		t.Error("config should not exist in a fresh home")
	}
}
