package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	got := dsn("kitlog", "s3cret", "db.internal", "3306", "kitlog")
	if !strings.HasPrefix(got, "kitlog:s3cret@tcp(db.internal:3306)/kitlog?") {
		t.Fatalf("dsn = %q", got)
	}
	for _, param := range []string{"parseTime=true", "loc=UTC", "clientFoundRows=true"} {
		if !strings.Contains(got, param) {
			t.Errorf("dsn missing %s: %q", param, got)
		}
	}
}

func TestDSNWithoutPassword(t *testing.T) {
	got := dsn("kitlog", "", "localhost", "3306", "kitlog")
	if !strings.HasPrefix(got, "kitlog@tcp(") {
		t.Fatalf("dsn = %q, want bare user auth", got)
	}
}
