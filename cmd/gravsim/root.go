package main

import (
	"log/slog"
	"os"

	"github.com/alvinng4/gravsim/gravlog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	log := gravlog.New(os.Stderr, slog.LevelInfo)

	root := &cobra.Command{
		Use:   "gravsim",
		Short: "A Newtonian N-body integration engine",
	}
	root.AddCommand(newRunCmd(log), newCatalogCmd())
	return root
}
