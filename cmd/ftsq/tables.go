package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func tablesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the admitted tables and their lookups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := openClient(flags)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			catalog := client.Catalog()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "TABLE\tMODULE\tFIELDS\tLOOKUPS")
			for _, schema := range catalog.Tables() {
				lookups, err := catalog.Lookups(schema.Name())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					schema.Name(),
					schema.Generation(),
					strings.Join(schema.FieldNames(), ","),
					strings.Join(lookups, ","),
				)
			}
			return w.Flush()
		},
	}
}

func capabilitiesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Show the engine's FTS generations and suppressed elements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := openClient(flags)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			out := cmd.OutOrStdout()
			facts := client.Facts()

			gens := make([]string, 0, 3)
			for _, g := range facts.Generations() {
				gens = append(gens, g.String())
			}
			_, _ = fmt.Fprintf(out, "engine: %s\n", facts.Engine())
			_, _ = fmt.Fprintf(out, "generations: %s\n", strings.Join(gens, ","))

			for _, s := range client.Catalog().Suppressed() {
				_, _ = fmt.Fprintf(out, "suppressed: %s (%s)\n", s.Element(), s.Reason())
			}
			return nil
		},
	}
}
