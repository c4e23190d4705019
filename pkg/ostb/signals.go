package ostb

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// StopContext returns a context cancelled on SIGINT or SIGTERM.
func StopContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
