// Command ams evaluates AMS markup and macro source.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/ams/cli"
	"github.com/ardnew/ams/log"
)

func main() {
	if err := cli.Run(context.Background(), os.Exit, os.Args[1:]...); err != nil {
		// Errors from lang and cli log their cause and attributes as a group.
		log.Error("ams", slog.Any("error", err))
		os.Exit(1)
	}
}
