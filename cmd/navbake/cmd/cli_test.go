package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfirmIfExistsMissingFile(t *testing.T) {
	ok, err := confirmIfExists(filepath.Join(t.TempDir(), "missing.yml"), "overwrite?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("a missing path should not require confirmation")
	}
}

// withStdin temporarily replaces os.Stdin with a pipe fed by input, and
// restores the original Stdin when the test completes.
func withStdin(t *testing.T, input string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("could not create pipe: %v", err)
	}
	orig := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = orig })

	go func() {
		w.WriteString(input)
		w.Close()
	}()
}

func TestAskForConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"N\n", false},
		{"\n", false},
	}

	for _, tt := range tests {
		withStdin(t, tt.input)
		got := askForConfirmation("proceed?")
		if got != tt.want {
			t.Fatalf("askForConfirmation(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfirmIfExistsExistingFileDeclined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.yml")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	withStdin(t, "n\n")
	ok, err := confirmIfExists(path, "overwrite?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("declining confirmation should report not-ok")
	}
}
