package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file.epub>",
		Short: "Add a single EPUB to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.close()

			book, err := a.scanner().AddBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added #%d: %s by %s (%d words)\n",
				book.ID, book.Title, book.Author, book.TotalWords)
			return nil
		},
	}
}
