package version

import "testing"

func TestVersionIsSet(t *testing.T) {
	if Version == "" {
		t.Error("Version must not be empty")
	}
}
