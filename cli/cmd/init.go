package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ams/lang"
	"github.com/ardnew/ams/log"
	"github.com/ardnew/ams/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init writes the current flag values to the configuration file as AMS
// source.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	err = lang.Format(file, buildConfig(ktx), defaultConfigIndent)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildConfig returns one binding sentence per visible flag with a value,
// in the order the flags are declared.
func buildConfig(ktx *kong.Context) *lang.Node {
	root := lang.NewParagraph()

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if value := flagValue(ktx.FlagValue(flag)); value != nil {
			root.Append(lang.NewSentence(lang.NewVariable(flag.Name), value))
		}
	}

	return root
}

// flagValue returns the argument word that binds a flag to val: an Invoker
// for a scalar, or for a slice a Paragraph whose only sentence is the list,
// one sentence per element. It returns nil for an empty value.
func flagValue(val any) *lang.Node {
	if val == nil {
		return nil
	}

	if rv := reflect.ValueOf(val); rv.Kind() == reflect.Slice {
		if rv.Len() == 0 {
			return nil
		}

		p := lang.NewParagraph()
		for i := range rv.Len() {
			p.Append(lang.NewSentence(lang.NewText(scalarText(rv.Index(i).Interface()))))
		}

		return lang.NewParagraph(lang.NewSentence(p))
	}

	text := scalarText(val)
	if text == "" {
		return nil
	}

	return lang.NewInvoker(lang.NewText(text))
}

func scalarText(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
