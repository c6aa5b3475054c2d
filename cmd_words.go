package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWordsCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Show dictionary statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			total, distinct, skipped := a.dict.Stats()
			fmt.Fprintf(out, "words      %d\n", total)
			fmt.Fprintf(out, "distinct   %d\n", distinct)
			fmt.Fprintf(out, "skipped    %d\n", skipped)
			fmt.Fprintf(out, "length     %d\n", a.dict.WordLength())
			if list {
				for _, w := range a.dict.Words() {
					fmt.Fprintln(out, w)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print every word")
	return cmd
}
