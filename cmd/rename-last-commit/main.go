package main

import (
	"context"
	"os"
	"os/signal"

	"renamecommit.dev/renamecommit/internal/cli"
	"renamecommit.dev/renamecommit/internal/errors"
	"renamecommit.dev/renamecommit/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := cli.NewRootCmd(version, commit, date)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		tui.NewSplog().Error("%v", err)
	}
	os.Exit(errors.ExitCode(err))
}
