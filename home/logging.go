package home

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// SetupLogger builds the CLI logger: text records to stderr and, when the
// log file can be opened, appended to ~/.vira/logs/vira.log. The returned
// close func releases the file handle.
func (h *Home) SetupLogger(verbose, quiet bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	var sinks []io.Writer
	sinks = append(sinks, os.Stderr)

	closeFn := func() {}
	file, err := os.OpenFile(h.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		// Logging must not take the CLI down; fall back to stderr only.
		fmt.Fprintf(os.Stderr, "warning: cannot open log file: %v\n", err)
	} else {
		sinks = append(sinks, file)
		closeFn = func() { _ = file.Close() }
	}

	handler := slog.NewTextHandler(io.MultiWriter(sinks...), &slog.HandlerOptions{Level: level})
	return slog.New(handler), closeFn, nil
}
