package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScanCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <folder>",
		Short: "Recursively add every EPUB under a folder to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.close()

			added, seen, err := a.scanner().ScanFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d EPUB files found.\n", added, seen)
			return nil
		},
	}
}
