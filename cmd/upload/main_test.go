package main

import (
	"path/filepath"
	"testing"
)

func TestRunUsageErrors(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Errorf("no -file: exit code = %d, want 2", code)
	}
	if code := run([]string{"-bogus"}); code != 2 {
		t.Errorf("unknown flag: exit code = %d, want 2", code)
	}
}

func TestRunReturnsOnConfigError(t *testing.T) {
	t.Setenv("NICEBOARD_API_KEY", "")
	t.Setenv("NICEBOARD_CONFIG", "")

	code := run([]string{"-file", filepath.Join(t.TempDir(), "jobs.json")})
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunReturnsOnMissingRecords(t *testing.T) {
	t.Setenv("NICEBOARD_API_KEY", "secret")
	t.Setenv("NICEBOARD_CONFIG", "")
	t.Setenv("LOG_LEVEL", "error")

	code := run([]string{"-file", filepath.Join(t.TempDir(), "missing.json")})
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}
