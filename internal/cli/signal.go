package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownError is the cancellation cause of a context stopped by a signal.
type ShutdownError struct {
	Signal os.Signal
}

func (e *ShutdownError) Error() string {
	return "received " + e.Signal.String()
}

// NotifyShutdown returns a context canceled on SIGINT or SIGTERM. The signal
// is recorded as the cause and can be read back with ShutdownSignal.
func NotifyShutdown(parent context.Context) (context.Context, context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := notifyShutdown(parent, ch)
	return ctx, func() {
		cancel()
		signal.Stop(ch)
	}
}

func notifyShutdown(parent context.Context, signals <-chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(parent)
	go func() {
		select {
		case sig := <-signals:
			cancel(&ShutdownError{Signal: sig})
		case <-ctx.Done():
		}
	}()
	return ctx, func() { cancel(context.Canceled) }
}

// ShutdownSignal reports the signal that canceled ctx, or nil.
func ShutdownSignal(ctx context.Context) os.Signal {
	var se *ShutdownError
	if errors.As(context.Cause(ctx), &se) {
		return se.Signal
	}
	return nil
}
