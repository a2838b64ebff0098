package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/ams/log"
)

// Parse parses src and returns the root Paragraph.
//
// Parsing never fails: any input yields some tree. Only the top-level split
// into sentences happens here; each sentence is parsed when first accessed.
func Parse(src string, opts ...Option) *Node {
	return parse(log.DefaultContextProvider(), src, makeOptions(opts...))
}

// ParseContext is [Parse] with trace records logged under ctx.
func ParseContext(ctx context.Context, src string, opts ...Option) *Node {
	return parse(ctx, src, makeOptions(opts...))
}

func parse(ctx context.Context, src string, o options) *Node {
	text, hit := normalize(src, !o.noCache)

	root := NewBuilder().Scanner(NewScanner(text)).Build()

	o.logger.TraceContext(
		ctx,
		"parse complete",
		slog.Int("source_bytes", len(src)),
		slog.Int("normalized_bytes", len(text)),
		slog.Int("sentences", root.Len()),
		slog.Bool("cached", hit),
	)

	return root
}

// ParseReader reads all of r and parses it like [Parse].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Node, error) {
	// Wrap reader with async read-ahead so that reading overlaps with
	// whatever produces the input.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return parse(ctx, string(data), makeOptions(opts...)), nil
}
