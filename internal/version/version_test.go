package version

import (
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	for _, part := range []string{Version, Commit, BuildDate} {
		if !strings.Contains(info, part) {
			t.Fatalf("info %q does not contain %q", info, part)
		}
	}
}
