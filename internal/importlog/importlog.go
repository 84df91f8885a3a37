// Package importlog records one row per import run in logs/import-log.csv.
package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp  time.Time
	BatchID    uuid.UUID
	File       string
	FileType   string
	Parsed     int
	Skipped    int
	Duplicates int
	Imported   int
	DryRun     bool
}

// NewEntry starts an entry with a fresh batch ID.
func NewEntry(file, fileType string, ts time.Time) Entry {
	return Entry{
		Timestamp: ts.UTC().Truncate(time.Second),
		BatchID:   uuid.New(),
		File:      file,
		FileType:  fileType,
	}
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,batch_id,file,file_type,parsed,skipped,duplicates,imported,dry_run"

const (
	numFields     = 9
	logDir        = "logs"
	logFile       = "logs/import-log.csv"
	colTimestamp  = 0
	colBatchID    = 1
	colFile       = 2
	colFileType   = 3
	colParsed     = 4
	colSkipped    = 5
	colDuplicates = 6
	colImported   = 7
	colDryRun     = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colBatchID] = e.BatchID.String()
	row[colFile] = e.File
	row[colFileType] = e.FileType
	row[colParsed] = strconv.Itoa(e.Parsed)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	row[colImported] = strconv.Itoa(e.Imported)
	row[colDryRun] = strconv.FormatBool(e.DryRun)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	batch, err := uuid.Parse(record[colBatchID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing batch_id %q: %w", record[colBatchID], err)
	}

	counts := make([]int, 0, 4)
	for _, col := range []int{colParsed, colSkipped, colDuplicates, colImported} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts = append(counts, n)
	}

	dryRun, err := strconv.ParseBool(record[colDryRun])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing dry_run %q: %w", record[colDryRun], err)
	}

	return Entry{
		Timestamp:  ts,
		BatchID:    batch,
		File:       record[colFile],
		FileType:   record[colFileType],
		Parsed:     counts[0],
		Skipped:    counts[1],
		Duplicates: counts[2],
		Imported:   counts[3],
		DryRun:     dryRun,
	}, nil
}

// Append writes entries to <repoRoot>/logs/import-log.csv, creating the file and header if needed.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/import-log.csv.
// Returns an empty slice if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	path := filepath.Join(repoRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
