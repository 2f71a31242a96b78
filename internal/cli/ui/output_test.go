package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csabika98/Mythic/internal/core/bottle"
)

func TestBottleStatus(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "drive_c"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		b    bottle.Bottle
		want string
	}{
		{"busy wins over everything", bottle.Bottle{Path: dir, Busy: true}, "busy"},
		{"booted prefix is ready", bottle.Bottle{Path: dir}, "ready"},
		{"recorded but absent prefix", bottle.Bottle{Path: filepath.Join(dir, "nope")}, "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BottleStatus(tt.b)
			if !strings.Contains(got, tt.want) {
				t.Errorf("BottleStatus() = %q, want substring %q", got, tt.want)
			}
		})
	}
}
