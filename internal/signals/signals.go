package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Context returns a context that is canceled when the process receives SIGINT
// or SIGTERM. A second signal terminates the process immediately.
func Context() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		<-sigChan
		os.Exit(1)
	}()
	return ctx
}
