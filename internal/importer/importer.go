package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/cleared-dev/bankimport/internal/dates"
	"github.com/cleared-dev/bankimport/internal/detect"
	"github.com/cleared-dev/bankimport/internal/model"
)

// Parser turns statement text into row outcomes.
type Parser interface {
	Parse(content string, opts Options) Result
	Format() detect.FileType
}

// Options tune parsing. The zero value auto-detects everything.
type Options struct {
	// Mapping overrides column-role inference for CSV input.
	Mapping *ColumnMapping
	// TreatPositiveAsExpense flips the sign convention for CSV exports
	// that list spending as positive numbers.
	TreatPositiveAsExpense bool
}

// RowStatus tags the outcome of a single CSV row or OFX block.
type RowStatus int

const (
	RowParsed RowStatus = iota
	RowSkipped
)

// RowResult is the outcome for one CSV record or OFX block.
type RowResult struct {
	Line        int // file line for CSV, 1-based block index for OFX
	Status      RowStatus
	Transaction model.ParsedTransaction
	Reason      string // set when skipped
}

// Result is everything a parser learned about a file.
type Result struct {
	FileType   detect.FileType
	Delimiter  rune
	Mapping    ColumnMapping
	HasHeader  bool
	DateFormat dates.Format
	Rows       []RowResult
}

// Transactions returns the successfully parsed rows in file order.
func (r Result) Transactions() []model.ParsedTransaction {
	txns := make([]model.ParsedTransaction, 0, len(r.Rows))
	for _, row := range r.Rows {
		switch row.Status {
		case RowParsed:
			txns = append(txns, row.Transaction)
		case RowSkipped:
		}
	}
	return txns
}

// Skipped returns the rows that were dropped, with reasons.
func (r Result) Skipped() []RowResult {
	var skipped []RowResult
	for _, row := range r.Rows {
		if row.Status == RowSkipped {
			skipped = append(skipped, row)
		}
	}
	return skipped
}

// UnsupportedFileTypeError is the only error parsing surfaces.
type UnsupportedFileTypeError struct {
	Filename string
}

func (e *UnsupportedFileTypeError) Error() string {
	return "Unsupported file type: " + e.Filename
}

// IsUnsupported reports whether err is an UnsupportedFileTypeError.
func IsUnsupported(err error) bool {
	var ute *UnsupportedFileTypeError
	return errors.As(err, &ute)
}

// Registry holds parsers keyed by file type.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(string(p.Format()))
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&OFXParser{fileType: detect.OFX})
	r.Register(&OFXParser{fileType: detect.QFX})
	return r
}

// Parse detects the format of content and parses it.
func (r *Registry) Parse(filename, content string, opts Options) (Result, error) {
	content = stripBOM(content)
	ft := detect.Detect(filename, content)
	p := r.Get(string(ft))
	if p == nil {
		return Result{FileType: ft}, &UnsupportedFileTypeError{Filename: filename}
	}
	res := p.Parse(content, opts)
	res.FileType = ft
	return res, nil
}

// Parse runs the default registry over a statement file's text.
func Parse(filename, content string, opts Options) (Result, error) {
	return DefaultRegistry().Parse(filename, content, opts)
}

func stripBOM(content string) string {
	out, err := unicode.UTF8BOM.NewDecoder().String(content)
	if err != nil {
		return content
	}
	return out
}

// FileInfo describes a statement file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

const (
	// ImportDir holds statement files waiting to be imported.
	ImportDir = "import"
	// ProcessedDir holds statement files that were imported.
	ProcessedDir = "import/processed"
)

var statementExts = map[string]bool{".csv": true, ".ofx": true, ".qfx": true}

// Scan returns statement files in <repoRoot>/import/.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, ImportDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !statementExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, ImportDir, fileName)
	dstDir := filepath.Join(repoRoot, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// InImportDir reports whether path is a direct child of <repoRoot>/import/.
func InImportDir(repoRoot, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	dir, err := filepath.Abs(filepath.Join(repoRoot, ImportDir))
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == dir
}
