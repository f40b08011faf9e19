package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"academy_portal/internal/apiclient"
	"academy_portal/internal/model"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	baseURL string
	asJSON  bool
}

func (o *rootOptions) client() *apiclient.Client {
	if o.baseURL != "" {
		return apiclient.New(o.baseURL)
	}
	return apiclient.NewFromEnv()
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse the academy product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "API base URL (default $"+apiclient.BaseURLEnv+" or "+apiclient.DefaultBaseURL+")")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print raw JSON")

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List published trainings and active services",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				products, err := opts.client().Products.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list products: %w", err)
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), products)
				}
				return writeTable(cmd.OutOrStdout(), products)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				product, err := opts.client().Products.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to get product %s: %w", args[0], err)
				}
				if opts.asJSON {
					return writeJSON(cmd.OutOrStdout(), product)
				}
				return writeTable(cmd.OutOrStdout(), []model.Product{*product})
			},
		},
	)
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, products []model.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tNAME\tPRICE\tDURATION")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Kind, p.Name, p.DisplayPrice, p.Duration)
	}
	return tw.Flush()
}
