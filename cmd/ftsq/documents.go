package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/helixml/ftsq/application/service"
	"github.com/helixml/ftsq/domain/lookup"
	"github.com/helixml/ftsq/infrastructure/api/v1/dto"
	"github.com/helixml/ftsq/internal/log"
)

func addCmd(flags *globalFlags) *cobra.Command {
	var values map[string]string

	cmd := &cobra.Command{
		Use:     "add TABLE",
		Short:   "Insert a document into a table",
		Example: `  ftsq add breakfast --value ingredients="Egg, bacon and SPAM"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(values) == 0 {
				return fmt.Errorf("at least one --value is required")
			}

			client, _, err := openClient(flags)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			ctx := log.NewCorrelationID(cmd.Context())
			id, err := client.Add(ctx, args[0], values)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&values, "value", nil, "Column value as field=text (repeatable)")
	return cmd
}

func searchCmd(flags *globalFlags) *cobra.Command {
	var (
		params dto.SearchParams
		table  string
	)

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Run a lookup against a table field",
		Example: `  ftsq search --table breakfast --field ingredients spam
  ftsq search --table breakfast --field ingredients --term "baked beans" --term lobster
  ftsq search --table breakfast --field ingredients --lookup match_near --term "SPAM SPAM" --term bacon`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				params.Query = args[0]
			}
			if params.Query != "" && len(params.Terms) > 0 {
				return fmt.Errorf("a query argument and --term are exclusive")
			}
			operand, err := params.Operand()
			if err != nil {
				return err
			}

			client, _, err := openClient(flags)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			opts := []service.SearchOption{service.WithRankOrder(params.Rank)}
			if params.Limit > 0 {
				opts = append(opts, service.WithLimit(params.Limit))
			}
			if params.Offset > 0 {
				opts = append(opts, service.WithOffset(params.Offset))
			}

			ctx := log.NewCorrelationID(cmd.Context())
			docs, err := client.Search(ctx, table, params.Field, params.Lookup, operand, opts...)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "ROWID\tRANK\t%s\n", strings.ToUpper(params.Field))
			for _, d := range docs {
				_, _ = fmt.Fprintf(w, "%d\t%.4f\t%s\n", d.RowID(), d.Rank(), d.Value(params.Field))
			}
			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVar(&table, "table", "", "Table to search")
	f.StringVar(&params.Field, "field", "", "Field to match against")
	f.StringVar(&params.Lookup, "lookup", lookup.Match, "Lookup: match, match_startswith, match_near")
	f.StringArrayVar(&params.Terms, "term", nil, "Phrase for an OR group or NEAR list (repeatable)")
	f.IntVar(&params.Within, "within", 0, "NEAR distance in tokens")
	f.IntVar(&params.Limit, "limit", 0, "Maximum results (default: SEARCH_LIMIT)")
	f.IntVar(&params.Offset, "offset", 0, "Results to skip")
	f.BoolVar(&params.Rank, "rank", false, "Order by relevance where the table supports it")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}
