package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbehnke/morseled/internal/morse"
)

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the encoding table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, e := range morse.Table() {
				fmt.Fprintf(out, "%c  0x%04X  %016b  %s\n",
					e.Letter, e.Pattern, e.Pattern, morse.Notation(morse.Decode(e.Pattern)))
			}
			return nil
		},
	}
}
