package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"

	"github.com/ardnew/ams/builtin"
	"github.com/ardnew/ams/lang"
	"github.com/ardnew/ams/log"
)

// resolve returns a [kong.ConfigurationLoader] for config files written in
// AMS.
//
// The file is evaluated once in a declaration scope with the standard
// builtin namespaces available, and each binding left at the top level
// becomes the value of the flag with the same name:
//
//	\log-level:debug;
//	\log-pretty:false;
//	\source{{base.ams;local.ams}}
//
// A Paragraph value provides one item per sentence for repeatable flags.
// Assignment binds the first sentence of its argument, so the list is
// wrapped in a second pair of braces.
// Flag names may be spelled with hyphens or underscores. Command-line flags
// override config file values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		opts := []lang.Option{lang.WithLogger(log.Default())}

		root, err := lang.ParseReader(ctx, r, opts...)
		if err != nil {
			return nil, err
		}

		exec := lang.NewPlainTextExecutor(opts...)
		exec.AddNamespaces(builtin.Namespaces())

		scope := exec.Declare(ctx, root)
		values := make(config)

		for name, value := range scope.Own() {
			switch {
			case value.IsNull(), value.IsStop():
				continue

			case value.Kind() == lang.KindParagraph:
				items := make([]any, 0, value.Len())
				for _, s := range value.Children() {
					items = append(items, s.Literal())
				}

				values[name] = items

			default:
				values[name] = value.PlainText(scope)
			}
		}

		log.TraceContext(ctx, "loaded AMS configuration",
			slog.Int("bindings", len(values)),
		)

		return values, nil
	}
}

// loadTOML is a [kong.ConfigurationLoader] for TOML config files.
//
// Tables are flattened, joining keys with hyphens, so that
//
//	[log]
//	level = "debug"
//
// sets the --log-level flag.
func loadTOML(r io.Reader) (kong.Resolver, error) {
	var data map[string]any

	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}

	values := make(config)
	values.flatten("", data)

	return values, nil
}

// config implements [kong.Resolver] over a flat map of flag values.
type config map[string]any

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := c[name]; ok {
			return value, nil
		}
	}

	// Not found: kong uses the default.
	return nil, nil
}

func (c config) flatten(prefix string, data map[string]any) {
	for key, value := range data {
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := value.(type) {
		case map[string]any:
			c.flatten(key, v)

		// Kong parses numbers from strings.
		case int64:
			c[key] = strconv.FormatInt(v, 10)

		case float64:
			c[key] = strconv.FormatFloat(v, 'f', -1, 64)

		default:
			c[key] = v
		}
	}
}
