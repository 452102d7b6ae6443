package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version ") {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("Template() missing commit: %q", got)
	}
}

func TestString(t *testing.T) {
	if n := strings.Count(String(), "\n"); n != 2 {
		t.Errorf("String() has %d newlines, want 2", n)
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "rocrate/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
}
