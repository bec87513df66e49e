package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type LogBuild struct {
	writer io.Writer
	level  string
	format string
}

func New() *LogBuild {
	return &LogBuild{writer: os.Stdout, level: "info", format: "json"}
}

func (build *LogBuild) FromWriter(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

func (build *LogBuild) WithLevel(level string) *LogBuild {
	build.level = level
	return build
}

// WithFormat selects "json" or "console" output.
func (build *LogBuild) WithFormat(format string) *LogBuild {
	build.format = format
	return build
}

func (build *LogBuild) Make() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(build.level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", build.level, err)
	}

	w := build.writer
	switch build.format {
	case "json", "":
	case "console":
		w = zerolog.ConsoleWriter{Out: build.writer, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", build.format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
