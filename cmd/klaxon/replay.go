package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"klaxon/internal/diag"
	"klaxon/internal/diagmgr"
)

var replayCmd = &cobra.Command{
	Use:   "replay <bundle>",
	Short: "Splice a serialized transport bundle into a local manager and list what a mark claims",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open bundle: %w", err)
	}
	defer f.Close()

	tr, err := diagmgr.DecodeTransport(f)
	if err != nil {
		return err
	}

	mgr := diagmgr.New(diagmgr.WithOutput(cmd.ErrOrStderr()))
	primary := mgr.Attach()
	mk := primary.Mark()
	defer mk.Release()

	tr.Post(primary)

	claimed := mk.Query()
	heading := color.New(color.Bold)
	heading.Fprintf(cmd.OutOrStdout(), "replayed %d error(s):\n", len(claimed))
	for _, d := range claimed {
		fmt.Fprintf(cmd.OutOrStdout(), "  #%d %s", d.Serial, diag.Render(d))
	}
	return nil
}
