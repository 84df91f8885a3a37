package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bankimport/internal/amount"
	"github.com/cleared-dev/bankimport/internal/importer"
	"github.com/cleared-dev/bankimport/internal/model"
	"github.com/cleared-dev/bankimport/internal/preview"
)

var (
	expenseColor = color.New(color.FgRed)
	incomeColor  = color.New(color.FgGreen)
	dupColor     = color.New(color.FgYellow)
	headColor    = color.New(color.Bold)
)

func newPreviewCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show what importing a statement would do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, opts)
			if err != nil {
				return err
			}
			_, _, p, err := e.buildPreview(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			renderPreview(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the preview as JSON")
	return cmd
}

// buildPreview parses a statement and projects it against the ledger.
func (e *env) buildPreview(arg string) (string, importer.Result, model.ImportPreview, error) {
	path, res, err := e.parseStatement(arg)
	if err != nil {
		return "", importer.Result{}, model.ImportPreview{}, err
	}
	existing, err := e.ledger.ReadExisting()
	if err != nil {
		return "", importer.Result{}, model.ImportPreview{}, err
	}
	popts, err := e.previewOptions()
	if err != nil {
		return "", importer.Result{}, model.ImportPreview{}, err
	}
	return path, res, preview.Build(res.Transactions(), existing, e.cfg.DefaultBucketID, popts), nil
}

func renderPreview(w io.Writer, p model.ImportPreview) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headColor.Fprintln(tw, "#\tSEL\tDATE\tAMOUNT\tCATEGORY\tDESCRIPTION\tFLAGS")
	for i, t := range p.Transactions {
		sel := " "
		if t.Selected {
			sel = "x"
		}
		amt := amount.Amount{MinorUnits: t.AmountMinorUnits, Negative: t.IsExpense}.String()
		if t.IsExpense {
			amt = expenseColor.Sprint(amt)
		} else {
			amt = incomeColor.Sprint(amt)
		}
		flags := ""
		if t.IsDuplicate {
			flags = dupColor.Sprint("duplicate")
		}
		fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\t%s\t%s\t%s\n",
			i+1, sel, t.Date, amt, t.MappedCategory, t.Description, flags)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d transactions: %d expenses, %d income, %d duplicates, %d selected\n",
		p.TotalCount, p.ExpenseCount, p.IncomeCount, p.DuplicateCount, preview.SelectedCount(p))
	if p.DateRange != nil {
		fmt.Fprintf(w, "Dates %s to %s\n", p.DateRange.Earliest, p.DateRange.Latest)
	}
}
