package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bankimport/internal/amount"
	"github.com/cleared-dev/bankimport/internal/execute"
	"github.com/cleared-dev/bankimport/internal/gitops"
	"github.com/cleared-dev/bankimport/internal/importer"
	"github.com/cleared-dev/bankimport/internal/importlog"
	"github.com/cleared-dev/bankimport/internal/logging"
	"github.com/cleared-dev/bankimport/internal/model"
	"github.com/cleared-dev/bankimport/internal/preview"
)

type importOptions struct {
	dryRun            bool
	includeDuplicates bool
	includeIncome     bool
	exclude           []int
	export            string
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	var iopts importOptions

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import the selected transactions of a statement into the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, opts)
			if err != nil {
				return err
			}
			return e.runImport(cmd, args[0], iopts)
		},
	}

	cmd.Flags().BoolVar(&iopts.dryRun, "dry-run", false, "show the payloads without writing the ledger")
	cmd.Flags().BoolVar(&iopts.includeDuplicates, "include-duplicates", false, "also import expenses flagged as duplicates")
	cmd.Flags().BoolVar(&iopts.includeIncome, "include-income", false, "also import income rows")
	cmd.Flags().IntSliceVar(&iopts.exclude, "exclude", nil, "row numbers (as shown by preview) to leave out")
	cmd.Flags().StringVar(&iopts.export, "export", "", "also write the payloads to this CSV file")

	return cmd
}

func (e *env) runImport(cmd *cobra.Command, arg string, iopts importOptions) error {
	run := logging.NewRunData(e.log)
	run.AddData("dry_run", iopts.dryRun)

	donePreview := run.AddTiming("preview")
	path, res, p, err := e.buildPreview(arg)
	donePreview()
	if err != nil {
		return err
	}
	name := filepath.Base(path)
	run.AddData("file", name)

	p = applySelection(p, iopts)
	payloads := execute.Execute(p.Transactions, execute.Options{
		PlanID:           e.cfg.PlanID,
		DefaultBucketID:  e.cfg.DefaultBucketID,
		DefaultFrequency: e.cfg.DefaultFrequency,
		CurrencyCode:     e.cfg.CurrencyCode,
	})
	run.AddData("selected", len(payloads))

	if iopts.export != "" {
		if err := exportPayloads(iopts.export, payloads); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if iopts.dryRun {
		for _, pl := range payloads {
			fmt.Fprintf(out, "%s  %10s  %-14s %s\n", pl.TransactionDate,
				amount.Amount{MinorUnits: pl.AmountMinorUnits}.String(), pl.Category, pl.Name)
		}
		fmt.Fprintf(out, "Dry run: %d of %d transactions would be imported\n", len(payloads), p.TotalCount)
	}

	var ids []string
	if !iopts.dryRun {
		doneWrite := run.AddTiming("write")
		ids, err = e.ledger.Append(payloads)
		doneWrite()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %d of %d transactions from %s\n", len(ids), p.TotalCount, name)
	}

	entry := importlog.NewEntry(name, string(res.FileType), time.Now())
	entry.Parsed = p.TotalCount
	entry.Skipped = len(res.Skipped())
	entry.Duplicates = p.DuplicateCount
	entry.Imported = len(ids)
	entry.DryRun = iopts.dryRun
	if err := importlog.Append(e.repoRoot, []importlog.Entry{entry}); err != nil {
		return err
	}
	run.AddData("batch_id", entry.BatchID.String())

	if !iopts.dryRun {
		if importer.InImportDir(e.repoRoot, path) {
			if err := importer.MarkProcessed(e.repoRoot, name); err != nil {
				return err
			}
		}
		if err := e.commit(fmt.Sprintf("import: %s (%d expenses)", name, len(ids))); err != nil {
			return err
		}
	}

	run.Log().Info("import finished")
	return nil
}

// applySelection adjusts the default selection with the command's flags.
func applySelection(p model.ImportPreview, iopts importOptions) model.ImportPreview {
	for i, t := range p.Transactions {
		switch {
		case t.IsDuplicate && t.IsExpense && iopts.includeDuplicates:
			p = preview.SetSelected(p, i, true)
		case !t.IsExpense && iopts.includeIncome && (!t.IsDuplicate || iopts.includeDuplicates):
			p = preview.SetSelected(p, i, true)
		}
	}
	for _, n := range iopts.exclude {
		p = preview.SetSelected(p, n-1, false)
	}
	return p
}

func exportPayloads(path string, payloads []model.ExpensePayload) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if payloads == nil {
		payloads = []model.ExpensePayload{}
	}
	if err := gocsv.MarshalFile(&payloads, f); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func (e *env) commit(message string) error {
	if !e.cfg.Git.AutoCommit || !gitops.IsRepo(e.repoRoot) {
		return nil
	}
	hash, err := gitops.Commit(e.repoRoot, message, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	e.log.WithField("commit", hash).Debug("committed import")
	return nil
}
