package cli

import (
	"context"
	"os"
)

// Execute builds the command tree around a stderr logger and runs it with
// ctx, which commands cancel on. Errors are returned unprinted.
func Execute(ctx context.Context) error {
	return New(os.Stderr, LogInfo).RootCommand().ExecuteContext(ctx)
}
