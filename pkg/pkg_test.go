package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMetadata(t *testing.T) {
	if Name != "ams" {
		t.Errorf("Name = %q, want %q", Name, "ams")
	}

	if Description == "" {
		t.Error("Description is empty")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); strings.TrimSpace(Version) != content {
		t.Errorf("Version = %q, want %q", Version, content)
	}
}

func TestUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		dir  func() (string, error)
		want string
	}{
		{
			name: "user dir",
			dir:  func() (string, error) { return "/base", nil },
			want: filepath.Join("/base", Prefix()),
		},
		{
			name: "home fallback",
			dir:  func() (string, error) { return "", errors.New("unset") },
			want: filepath.Join(home, ".hidden", Prefix()),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userDir(tt.dir, ".hidden"); got != tt.want {
				t.Errorf("userDir = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	if p := Prefix(); p == "" || strings.HasPrefix(p, ".") {
		t.Errorf("Prefix() = %q", p)
	}
}
