package version

import (
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	s := String()
	if s == "" {
		t.Fatalf("version string is empty")
	}
	if strings.ContainsAny(s, " \t\n") {
		t.Fatalf("version string contains whitespace: %q", s)
	}
}
