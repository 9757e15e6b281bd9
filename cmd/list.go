package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the library, most recently read first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath, false)
			if err != nil {
				return err
			}
			defer a.close()

			books, err := a.scanner().Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Library is empty. Add books with 'ritmo scan <folder>'.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Title", "Author", "Words", "Progress", "Last read"})
			for _, b := range books {
				lastRead := "never"
				if !b.LastRead.IsZero() {
					lastRead = b.LastRead.Local().Format("2006-01-02 15:04")
				}
				t.AppendRow(table.Row{
					b.ID,
					truncate(b.Title, 48),
					truncate(b.Author, 24),
					b.TotalWords,
					fmt.Sprintf("%.1f%%", b.Progress),
					lastRead,
				})
			}
			t.Render()
			return nil
		},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
