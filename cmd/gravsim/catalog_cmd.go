package main

import (
	"fmt"
	"os"

	"github.com/alvinng4/gravsim/catalog"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the built-in preset catalog",
	}
	cmd.AddCommand(newCatalogListCmd(), newCatalogValidateCmd())
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the named preset systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range catalog.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.csv>",
		Short: "Validate a custom-system CSV file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			systems, err := catalog.ReadCustom(f)
			if err != nil {
				return err
			}
			for _, s := range systems {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: N=%d ok\n", s.Name, len(s.M))
			}
			return nil
		},
	}
}
