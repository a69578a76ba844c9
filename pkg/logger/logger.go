package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log is the process-wide structured logger. It is safe to use before Init,
// in which case it writes JSON at info level to stdout.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init configures the global logger for the given environment.
// Production logs at info level; everything else logs at debug.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

func InitWithWriter(env string, w io.Writer) {
	level := slog.LevelDebug
	if env == "production" {
		level = slog.LevelInfo
	}
	Log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})).With("service", "jobboard-api")
	slog.SetDefault(Log)
}
