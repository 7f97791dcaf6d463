package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/energybaselines/agent/baseline/battery"
)

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Print the defects of the legacy battery rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printAudit(cmd.OutOrStdout(), battery.LegacyConfig())
			return nil
		},
	}
}

func printAudit(out io.Writer, c battery.Config) {
	au := colours(out)

	fmt.Fprintln(out, au.Bold("Rule-of-thumb battery rule"))
	for _, w := range c.Windows {
		fmt.Fprintf(out, "  window %v\n", w)
	}
	fmt.Fprintf(out, "  otherwise reward %v\n", c.Fallback)

	defects := battery.Audit(c)
	fmt.Fprintf(out, "%v\n", au.Red(fmt.Sprintf("%v defects", len(defects))))
	for _, d := range defects {
		fmt.Fprintf(out, "  %v %v\n", au.Red("x"), d)
	}
}
