package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/bankimport/internal/amount"
	"github.com/cleared-dev/bankimport/internal/dates"
	"github.com/cleared-dev/bankimport/internal/detect"
	"github.com/cleared-dev/bankimport/internal/model"
)

// CSVParser parses delimited bank exports of unknown layout.
type CSVParser struct{}

// Format returns the parser's file type.
func (p *CSVParser) Format() detect.FileType { return detect.CSV }

type record struct {
	line   int
	fields []string
	err    error
}

// Parse infers delimiter, column roles and date format, then extracts rows.
// Rows that cannot be read are reported as skipped, never as errors.
func (p *CSVParser) Parse(content string, opts Options) Result {
	res := Result{Delimiter: DetectDelimiter(content)}
	records := readRecords(content, res.Delimiter)

	switch {
	case opts.Mapping != nil:
		res.Mapping = *opts.Mapping
	default:
		res.Mapping = PositionalMapping
		if first := firstRecord(records); first != nil {
			if m, ok := InferColumns(first.fields); ok {
				res.Mapping = m
				res.HasHeader = true
			}
		}
	}

	data := records
	if res.HasHeader {
		data = dropFirstRecord(records)
	}

	res.DateFormat = dates.Infer(dateSamples(data, res.Mapping.Date))

	for _, rec := range data {
		if rec.err != nil {
			res.Rows = append(res.Rows, RowResult{Line: rec.line, Status: RowSkipped, Reason: rec.err.Error()})
			continue
		}
		res.Rows = append(res.Rows, extractRow(rec, res.Mapping, res.DateFormat, opts))
	}
	return res
}

func extractRow(rec record, m ColumnMapping, df dates.Format, opts Options) RowResult {
	skip := func(reason string) RowResult {
		return RowResult{Line: rec.line, Status: RowSkipped, Reason: reason}
	}

	rawDate := cell(rec.fields, m.Date)
	desc := cell(rec.fields, m.Description)
	rawAmount := cell(rec.fields, m.Amount)
	switch {
	case rawDate == "":
		return skip("missing date")
	case desc == "":
		return skip("missing description")
	case rawAmount == "":
		return skip("missing amount")
	}

	date, ok := dates.Parse(rawDate, df)
	if !ok {
		return skip(fmt.Sprintf("unparseable date %q", rawDate))
	}
	amt, err := amount.Parse(rawAmount)
	if err != nil {
		return skip(fmt.Sprintf("unparseable amount %q", rawAmount))
	}

	isExpense := amt.Negative
	if opts.TreatPositiveAsExpense {
		isExpense = !isExpense
	}

	return RowResult{
		Line:   rec.line,
		Status: RowParsed,
		Transaction: model.ParsedTransaction{
			Date:             date,
			Description:      desc,
			AmountMinorUnits: amt.MinorUnits,
			IsExpense:        isExpense,
			Category:         cell(rec.fields, m.Category),
		},
	}
}

// readRecords tokenizes content with quote awareness. Delimiters and line
// breaks inside quotes are literal and "" is an escaped quote.
func readRecords(content string, delim rune) []record {
	cr := csv.NewReader(strings.NewReader(content))
	cr.Comma = delim
	cr.LazyQuotes = true
	// csv would also eat tab delimiters and with them empty cells.
	cr.TrimLeadingSpace = delim != '\t'
	cr.FieldsPerRecord = -1

	var records []record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				break
			}
			records = append(records, record{line: pe.StartLine, err: fmt.Errorf("malformed row: %w", pe.Err)})
			continue
		}
		line, _ := cr.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
	return records
}

func firstRecord(records []record) *record {
	for i := range records {
		if records[i].err == nil {
			return &records[i]
		}
	}
	return nil
}

func dropFirstRecord(records []record) []record {
	for i := range records {
		if records[i].err == nil {
			out := make([]record, 0, len(records)-1)
			out = append(out, records[:i]...)
			return append(out, records[i+1:]...)
		}
	}
	return records
}

func dateSamples(records []record, col int) []string {
	var samples []string
	for _, rec := range records {
		if rec.err != nil {
			continue
		}
		samples = append(samples, cell(rec.fields, col))
		if len(samples) == dates.MaxInferenceSamples {
			break
		}
	}
	return samples
}
