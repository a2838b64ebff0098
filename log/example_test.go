package log_test

import (
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/ams/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("parsed source", slog.Int("sentences", 3))
	logger.Debug("not shown below the default level")
	// Output:
	// level=INFO msg="parsed source" sentences=3
}

func ExampleLogger_Wrap() {
	base := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	verbose := base.Wrap(log.WithLevel(log.LevelTrace))

	base.Trace("dropped")
	verbose.Trace("invoke", slog.String("word", "upper"))
	// Output:
	// {"level":"TRACE","msg":"invoke","word":"upper"}
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithTimeLayout("none"),
		log.WithPretty(false)).
		With(slog.String("result", "r1"))

	logger.Warn("evaluation stopped", slog.Any("error", errors.New("depth")))
	// Output:
	// level=WARN msg="evaluation stopped" result=r1 error=depth
}
