package repository

import (
	"testing"
)

func TestBuildUpdate(t *testing.T) {
	fields := map[string]any{"price": 300, "name": "Airport run"}

	query, args, err := buildUpdate("jobs", jobUpdateColumns, fields, 7)
	if err != nil {
		t.Fatalf("buildUpdate failed: %v", err)
	}

	// columns are sorted, id comes last
	want := "UPDATE jobs SET name = ?, price = ? WHERE id = ?"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != "Airport run" || args[1] != 300 || args[2] != int64(7) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildUpdateUnknownColumn(t *testing.T) {
	_, _, err := buildUpdate("jobs", jobUpdateColumns, map[string]any{"public_id": "x"}, 1)
	if err == nil {
		t.Fatal("expected error for column outside the allowed set")
	}
}

func TestBuildUpdateEmpty(t *testing.T) {
	query, args, err := buildUpdate("users", userUpdateColumns, nil, 1)
	if err != nil {
		t.Fatalf("buildUpdate failed: %v", err)
	}
	if query != "" || args != nil {
		t.Error("empty field map should produce a no-op")
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrUserNotFound.Error() != "user not found" {
		t.Errorf("unexpected message: %s", ErrUserNotFound)
	}
	if ErrJobNotFound.Error() != "job not found" {
		t.Errorf("unexpected message: %s", ErrJobNotFound)
	}
}
