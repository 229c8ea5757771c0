package testutil

import (
	"io"
	"log/slog"
)

// DiscardLogger swallows everything; handy where a component insists on a
// logger but the test only checks behavior.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
