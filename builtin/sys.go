package builtin

import (
	"bufio"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
)

// Sys returns the members of [SysNamespace], which describe the host.
// Values are computed each time they are read.
func Sys() Namespace {
	return Namespace{
		"target": valueFunc("target", "host target in GNU naming, arch-os", func() string {
			return getTarget().String()
		}),
		"platform": valueFunc("platform", "host platform in Go naming, os/arch", func() string {
			p := getPlatform()

			return p.OS + "/" + p.Arch
		}),
		"hostname": valueFunc("hostname", "host name", getHostname),
		"user": valueFunc("user", "current user name", func() string {
			if u := getUser(); u != nil {
				return u.Username
			}

			return ""
		}),
		"shell": valueFunc("shell", "current user's login shell", getShell),
		"cwd":   valueFunc("cwd", "current working directory", getCwd),
		"env":   textFunc("env", "value of the environment variable named by the argument", os.Getenv),
	}
}

// File returns the members of [FileNamespace], which test the path named by
// their argument and yield "true" or "false".
func File() Namespace {
	return Namespace{
		"exists":    textFunc("exists", "path exists", predicate(fileExists)),
		"isdir":     textFunc("isdir", "path is a directory", predicate(fileIsDir)),
		"isregular": textFunc("isregular", "path is a regular file", predicate(fileIsRegular)),
		"issymlink": textFunc("issymlink", "path is a symbolic link", predicate(fileIsSymlink)),
	}
}

func predicate(fn func(string) bool) func(string) string {
	return func(path string) string { return boolText(fn(path)) }
}

// target identifies an operating system and instruction set architecture.
type target struct {
	OS   string
	Arch string
}

func (t target) String() string { return t.Arch + "-" + t.OS }

// getTarget returns the host target using GNU GCC/LLVM naming conventions.
func getTarget() target {
	t := getPlatform()

	switch t.Arch {
	case "386":
		t.Arch = "i386"
	case "amd64":
		t.Arch = "x86_64"
	case "arm":
		if arm, ok := os.LookupEnv("GOARM"); ok {
			arm, _, _ = strings.Cut(arm, ",")
			switch arm = strings.TrimSpace(arm); arm {
			case "5", "6", "7":
				t.Arch = "armv" + arm
			}
		}
	case "arm64":
		if t.OS != "darwin" {
			t.Arch = "aarch64"
		}
	case "mipsle":
		t.Arch = "mipsel"
	}

	return t
}

// getPlatform returns the host target using Go conventions, preferring the
// GOHOSTOS/GOOS and GOHOSTARCH/GOARCH environment variables when set.
func getPlatform() target {
	return target{
		OS:   firstEnv(runtime.GOOS, "GOHOSTOS", "GOOS"),
		Arch: firstEnv(runtime.GOARCH, "GOHOSTARCH", "GOARCH"),
	}
}

func firstEnv(fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
	}

	return fallback
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

func getUser() *user.User {
	u, err := user.Current()
	if err != nil {
		return nil
	}

	return u
}

// getShell returns $SHELL, or the current user's shell from /etc/passwd.
func getShell() string {
	if shell, ok := os.LookupEnv("SHELL"); ok {
		return shell
	}

	u := getUser()
	if u == nil || u.Username == "" {
		return ""
	}

	f, err := os.Open("/etc/passwd")
	if err != nil {
		return ""
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		e := strings.Split(s.Text(), ":")
		if len(e) > 6 && e[0] == u.Username {
			return e[6]
		}
	}

	return ""
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return pathAbs(".")
	}

	return cwd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

func fileIsDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func fileIsRegular(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

func fileIsSymlink(path string) bool {
	info, err := os.Lstat(path)

	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func pathAbs(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return p
}
