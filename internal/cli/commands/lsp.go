package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cascade-lang/cascade/internal/lsp"
)

// NewLSPCommand creates the lsp command
func NewLSPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start the Cascade language server, communicating over stdin and
stdout using the Language Server Protocol.

This command is meant to be launched by an editor, not run directly.
It provides diagnostics, completions, hover information, go to
definition, and symbol search for Cascade stylesheets.`,
		RunE: runLSP,
	}
}

func runLSP(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	server := lsp.NewServer()
	return server.Run(ctx)
}
