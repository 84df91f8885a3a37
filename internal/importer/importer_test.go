package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bankimport/internal/detect"
	"github.com/cleared-dev/bankimport/internal/model"
)

func TestParse_ScenarioA(t *testing.T) {
	res, err := Parse("bank.csv", "Date,Description,Amount\n2024-01-15,Coffee,-5.00", Options{})
	require.NoError(t, err)

	assert.Equal(t, detect.CSV, res.FileType)
	assert.True(t, res.HasHeader)
	assert.Equal(t, []model.ParsedTransaction{
		{Date: "2024-01-15", Description: "Coffee", AmountMinorUnits: 500, IsExpense: true},
	}, res.Transactions())
}

func TestParse_UnsupportedFileType(t *testing.T) {
	assert.Equal(t, detect.Unknown, detect.Detect("unknown.xyz", "random content"))

	_, err := Parse("unknown.xyz", "random content", Options{})
	require.Error(t, err)
	assert.Equal(t, "Unsupported file type: unknown.xyz", err.Error())

	var ute *UnsupportedFileTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "unknown.xyz", ute.Filename)
	assert.True(t, IsUnsupported(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsUnsupported(errors.New("other")))
}

func TestParse_ContentSniffing(t *testing.T) {
	res, err := Parse("unknown.txt", "a,b,c\n1,2,3", Options{})
	require.NoError(t, err)
	assert.Equal(t, detect.CSV, res.FileType)
	assert.Empty(t, res.Transactions())

	res, err = Parse("download", "OFXHEADER:100\n<OFX><STMTTRN><DTPOSTED>20240101<TRNAMT>-1.00<NAME>X</STMTTRN>", Options{})
	require.NoError(t, err)
	assert.Equal(t, detect.OFX, res.FileType)
	assert.Len(t, res.Transactions(), 1)
}

func TestParse_QFXUsesOFXExtractor(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement.ofx")
	require.NoError(t, err)

	res, err := Parse("statement.qfx", string(data), Options{})
	require.NoError(t, err)
	assert.Equal(t, detect.QFX, res.FileType)
	assert.Len(t, res.Transactions(), 4)
}

func TestParse_StripsBOM(t *testing.T) {
	res, err := Parse("bank.csv", "\ufeffDate,Description,Amount\n2024-01-15,Coffee,-5.00\n", Options{})
	require.NoError(t, err)
	assert.True(t, res.HasHeader)
	assert.Len(t, res.Transactions(), 1)
}

func TestResult_TransactionsAndSkipped(t *testing.T) {
	res := Result{Rows: []RowResult{
		{Line: 2, Status: RowParsed, Transaction: model.ParsedTransaction{Description: "a"}},
		{Line: 3, Status: RowSkipped, Reason: "missing date"},
		{Line: 4, Status: RowParsed, Transaction: model.ParsedTransaction{Description: "b"}},
	}}

	txns := res.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, "a", txns[0].Description)
	assert.Equal(t, "b", txns[1].Description)

	skipped := res.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, 3, skipped[0].Line)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	p := r.Get("csv")
	require.NotNil(t, p)
	assert.Equal(t, detect.CSV, p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.NotNil(t, r.Get("Csv"))
	assert.NotNil(t, r.Get("CSV"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("csv"))
	assert.NotNil(t, r.Get("ofx"))
	assert.NotNil(t, r.Get("qfx"))
	assert.Nil(t, r.Get("unknown"))
}

func TestScan_FindsStatements(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	for _, name := range []string{"bank.csv", "card.OFX", "quicken.qfx", "other.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(importDir, name), []byte("data"), 0o644))
	}

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	names := []string{files[0].Name, files[1].Name, files[2].Name}
	assert.ElementsMatch(t, []string{"bank.csv", "card.OFX", "quicken.qfx"}, names)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestInImportDir(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, InImportDir(dir, filepath.Join(dir, "import", "bank.csv")))
	assert.False(t, InImportDir(dir, filepath.Join(dir, "import", "processed", "bank.csv")))
	assert.False(t, InImportDir(dir, filepath.Join(dir, "bank.csv")))
}
