package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ams/lang"
)

type (
	contextKey struct{}
	sourcesKey struct{}
	streamsKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Streams are the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStreams returns a new context.Context whose commands use the given
// streams. Nil members fall back to the process streams.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

// StreamsFrom returns the streams stored in ctx by [WithStreams].
func StreamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Sources is an ordered, duplicate-free set of AMS source files.
type Sources struct {
	paths []string
	stdin bool
}

// WithSourceFiles returns a new context.Context containing the [Sources]
// named by the global --source flag.
func WithSourceFiles(ctx context.Context, names []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, NewSources(names...))
}

// SourcesFrom returns the sources stored in ctx by [WithSourceFiles], or
// nil.
func SourcesFrom(ctx context.Context) *Sources {
	s, _ := ctx.Value(sourcesKey{}).(*Sources)

	return s
}

// NewSources resolves names into a [Sources].
//
// Paths are made absolute and resolved through symlinks, and files already
// seen (by device and inode) are dropped. Every "-" collapses into a single
// stdin source that is read after all files, as does a name that refers to
// the same file as stdin. Names that cannot be resolved are skipped.
func NewSources(names ...string) *Sources {
	var s Sources

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, hasStdinKey := makeFileKey(stdinInfo)

	for _, name := range names {
		if name == stdinSource {
			s.stdin = true

			continue
		}

		path, key, ok := resolveFile(name)
		if !ok {
			continue
		}

		if hasStdinKey && key == stdinKey {
			s.stdin = true

			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		s.paths = append(s.paths, path)
	}

	return &s
}

// IsZero reports whether s names no source at all.
func (s *Sources) IsZero() bool {
	return s == nil || (len(s.paths) == 0 && !s.stdin)
}

// Paths returns the resolved file paths, in order.
func (s *Sources) Paths() []string {
	if s == nil {
		return nil
	}

	return s.paths
}

// Stdin reports whether stdin is one of the sources.
func (s *Sources) Stdin() bool { return s != nil && s.stdin }

// Merge returns the union of s and o, keeping the order of s first.
func (s *Sources) Merge(o *Sources) *Sources {
	names := append([]string{}, s.Paths()...)
	names = append(names, o.Paths()...)

	if s.Stdin() || o.Stdin() {
		names = append(names, stdinSource)
	}

	return NewSources(names...)
}

// ReadAll reads every source, files first and then stdin.
//
// Each source is ended with a sentence separator unless it already ends with
// one, so the last sentence of one file never runs into the first of the
// next.
func (s *Sources) ReadAll(stdin io.Reader) (string, error) {
	var buf bytes.Buffer

	appendSource := func(name string, r io.Reader) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return ErrReadSource.Wrap(err).With(slog.String("source", name))
		}

		buf.Write(data)

		if text := strings.TrimSpace(string(data)); text != "" &&
			!strings.HasSuffix(text, string(lang.SymbolSeparator)) {
			buf.WriteByte(lang.SymbolSeparator)
		}

		return nil
	}

	for _, path := range s.Paths() {
		file, err := os.Open(path)
		if err != nil {
			return "", ErrReadSource.Wrap(err).With(slog.String("source", path))
		}

		err = appendSource(path, file)
		file.Close()

		if err != nil {
			return "", err
		}
	}

	if s.Stdin() {
		if err := appendSource(stdinSource, stdin); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

// readSource combines the global sources stored in ctx with the positional
// names of a command and reads them. With no sources at all, stdin is read.
func readSource(ctx context.Context, names []string) (string, error) {
	s := SourcesFrom(ctx).Merge(NewSources(names...))
	if s.IsZero() {
		s = NewSources(stdinSource)
	}

	return s.ReadAll(StreamsFrom(ctx).In)
}

// fileKey uniquely identifies a file by its device and inode numbers.
type fileKey struct {
	dev uint64
	ino uint64
}

// resolveFile returns the absolute, symlink-free path of name with its key.
func resolveFile(name string) (string, fileKey, bool) {
	absPath, err := filepath.Abs(name)
	if err != nil {
		return "", fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fileKey{}, false
	}

	key, ok := makeFileKey(info)

	return resolved, key, ok
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}
