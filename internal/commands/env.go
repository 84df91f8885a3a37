package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bankimport/internal/categorize"
	"github.com/cleared-dev/bankimport/internal/config"
	"github.com/cleared-dev/bankimport/internal/dedup"
	"github.com/cleared-dev/bankimport/internal/expenses"
	"github.com/cleared-dev/bankimport/internal/importer"
	"github.com/cleared-dev/bankimport/internal/logging"
	"github.com/cleared-dev/bankimport/internal/preview"
)

// env is everything a command needs from the repo it runs against.
type env struct {
	repoRoot string
	cfg      *config.Config
	log      *logrus.Logger
	ledger   *expenses.Ledger
}

func loadEnv(cmd *cobra.Command, opts *rootOptions) (*env, error) {
	root, err := filepath.Abs(opts.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving repo path: %w", err)
	}

	cfg := config.Default("")
	cfgPath := filepath.Join(root, config.FileName)
	if _, statErr := os.Stat(cfgPath); statErr == nil {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking config: %w", statErr)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.FileName, err)
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	if opts.logFormat != "" {
		format = opts.logFormat
	}
	logger, err := logging.Setup(cmd.ErrOrStderr(), level, format)
	if err != nil {
		return nil, err
	}

	return &env{
		repoRoot: root,
		cfg:      cfg,
		log:      logger,
		ledger:   expenses.NewLedger(root),
	}, nil
}

// statementPath resolves a file argument: as given, else under import/.
func (e *env) statementPath(arg string) (string, error) {
	candidates := []string{arg}
	if !filepath.IsAbs(arg) {
		candidates = append(candidates, filepath.Join(e.repoRoot, importer.ImportDir, arg))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return filepath.Abs(c)
		}
	}
	return "", fmt.Errorf("statement %q not found", arg)
}

func (e *env) parseOptions() importer.Options {
	opts := importer.Options{TreatPositiveAsExpense: e.cfg.CSV.TreatPositiveAsExpense}
	if m := e.cfg.CSV.Mapping; m.Explicit() {
		opts.Mapping = &importer.ColumnMapping{
			Date:        m.Date,
			Description: m.Description,
			Amount:      m.Amount,
			Category:    max(m.Category, importer.NoColumn),
		}
	}
	return opts
}

// parseStatement reads and parses a statement file.
func (e *env) parseStatement(arg string) (string, importer.Result, error) {
	path, err := e.statementPath(arg)
	if err != nil {
		return "", importer.Result{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", importer.Result{}, fmt.Errorf("reading statement: %w", err)
	}
	res, err := importer.Parse(filepath.Base(path), string(data), e.parseOptions())
	if err != nil {
		return "", importer.Result{}, err
	}

	for _, row := range res.Skipped() {
		e.log.WithFields(logrus.Fields{
			"file":   filepath.Base(path),
			"line":   row.Line,
			"reason": row.Reason,
		}).Debug("skipped row")
	}
	return path, res, nil
}

func (e *env) categorizer() (*categorize.Categorizer, error) {
	if e.cfg.CategoriesFile == "" {
		return categorize.LoadEmbedded()
	}
	path := e.cfg.CategoriesFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.repoRoot, path)
	}
	return categorize.LoadFromFile(path)
}

func (e *env) previewOptions() (preview.Options, error) {
	cat, err := e.categorizer()
	if err != nil {
		return preview.Options{}, err
	}
	return preview.Options{
		Categorizer:  cat,
		Deduplicator: dedup.New(e.cfg.Dedup.DescriptionLength),
	}, nil
}
