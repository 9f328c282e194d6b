package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/gogpu/softwin"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// setupLogging routes softwin logs to stderr. -v and -vv override the
// configured level.
func setupLogging(ctx *cli.Context, level slog.Level) {
	if ctx.GlobalBool("v") {
		level = min(level, slog.LevelInfo)
	}
	if ctx.GlobalBool("vv") {
		level = slog.LevelDebug
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	softwin.SetLogger(logger)
}
