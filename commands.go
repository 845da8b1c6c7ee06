package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/spf13/cobra"

	"quotebuilder/collections"
	"quotebuilder/drafts"
	"quotebuilder/quote"
	"quotebuilder/services"
)

// newQuoteCommand groups the offline quote utilities under "quote".
func newQuoteCommand(app *pocketbase.PocketBase) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Export, total and import quotes without the web UI",
	}
	cmd.AddCommand(newExportCommand(app), newTotalsCommand(app), newImportCommand(app))
	return cmd
}

// source holds the --id/--file/--sample flags shared by the read commands.
type source struct {
	id     string
	file   string
	sample bool
}

func (s *source) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.id, "id", "", "id of a stored quote record")
	cmd.Flags().StringVar(&s.file, "file", "", "path to a draft JSON file")
	cmd.Flags().BoolVar(&s.sample, "sample", false, "use the built-in sample quote")
	cmd.MarkFlagsMutuallyExclusive("id", "file", "sample")
	cmd.MarkFlagsOneRequired("id", "file", "sample")
}

func (s *source) load(cmd *cobra.Command, app *pocketbase.PocketBase) (quote.Quote, error) {
	var store drafts.Store
	switch {
	case s.file != "":
		store = drafts.NewFileStore(s.file)
	case s.sample:
		mem := drafts.NewMemoryStore()
		if err := mem.Save(cmd.Context(), drafts.Draft{SavedAt: time.Now(), Data: quote.Sample()}); err != nil {
			return quote.Quote{}, fmt.Errorf("seed sample quote: %w", err)
		}
		store = mem
	default:
		collections.Setup(app)
		store = drafts.NewRecordStore(app, s.id)
	}

	d, err := store.Load(cmd.Context())
	if err != nil {
		return quote.Quote{}, fmt.Errorf("load quote: %w", err)
	}
	if err := quote.Check(d.Data); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return d.Data, nil
}

func newExportCommand(app *pocketbase.PocketBase) *cobra.Command {
	var src source
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a quote as a PDF quotation or an Excel pricing sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := src.load(cmd, app)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "pdf":
				data, err = services.GenerateQuotePDF(q)
			case "xlsx":
				data, err = services.GenerateQuoteExcel(services.BuildExportData(q, time.Now().Format("02 Jan 2006")))
			default:
				return fmt.Errorf("unknown format %q (want pdf or xlsx)", format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}

			if out == "" {
				out = "quote." + format
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	src.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "pdf", "output format: pdf or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default quote.<format>)")
	return cmd
}

func newTotalsCommand(app *pocketbase.PocketBase) *cobra.Command {
	var src source
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Print package, price group and quote totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := src.load(cmd, app)
			if err != nil {
				return err
			}
			summary := services.Summarize(q)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "\tTotal Net\tBid Price\tComm\t")
			for _, p := range summary.Packages {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", p.Name,
					services.FormatUSD(p.Totals.TotalNet), services.FormatUSD(p.Totals.BidPrice), services.FormatUSD(p.Totals.Comm))
				for _, g := range p.Groups {
					fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t\n", g.Name,
						services.FormatUSD(g.Totals.TotalNet), services.FormatUSD(g.Totals.BidPrice), services.FormatUSD(g.Totals.Comm))
				}
			}
			t := summary.Totals
			fmt.Fprintf(tw, "Quote\t%s\t%s\t%s\t\n", services.FormatUSD(t.TotalNet), services.FormatUSD(t.BidPrice), services.FormatUSD(t.Comm))
			fmt.Fprintf(tw, "Margin\t\t\t%s\t\n", services.FormatPercent(summary.MarginPercent))
			return tw.Flush()
		},
	}
	src.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the totals as JSON")
	return cmd
}

func newImportCommand(app *pocketbase.PocketBase) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a draft JSON file as a new quote record",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := drafts.NewFileStore(file).Load(cmd.Context())
			if errors.Is(err, drafts.ErrNotFound) {
				return fmt.Errorf("%s holds no draft", file)
			}
			if err != nil {
				return fmt.Errorf("load draft: %w", err)
			}

			collections.Setup(app)
			record, err := drafts.CreateRecord(app, d.Data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s as %s\n", record.GetString("name"), record.Id)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a draft JSON file")
	cmd.MarkFlagRequired("file")
	return cmd
}
