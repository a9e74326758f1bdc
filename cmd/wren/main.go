package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/simonhull/firebird-suite/wren/internal/commands"
	"github.com/simonhull/firebird-suite/wren/internal/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.SyncCmd())
	rootCmd.AddCommand(commands.InspectCmd())
	rootCmd.AddCommand(commands.InitCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		output.Error(err.Error())
		stop()
		os.Exit(1)
	}
}
