package importlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	e := NewEntry("chase_checking.csv", "csv", testTime)
	e.Parsed = 6
	e.Skipped = 1
	e.Duplicates = 2
	e.Imported = 3
	return e
}

func TestNewEntry(t *testing.T) {
	a := NewEntry("a.csv", "csv", testTime.Add(500*time.Millisecond))
	b := NewEntry("a.csv", "csv", testTime)
	assert.Equal(t, testTime, a.Timestamp)
	assert.NotEqual(t, uuid.Nil, a.BatchID)
	assert.NotEqual(t, a.BatchID, b.BatchID)
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	err := Append(dir, []Entry{testEntry()})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "chase_checking.csv", entries[0].File)
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.File = "statement.ofx"
	e2.FileType = "ofx"
	e2.DryRun = true
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "chase_checking.csv", entries[0].File)
	assert.Equal(t, "statement.ofx", entries[1].File)
	assert.True(t, entries[1].DryRun)
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, original, entries[0])
}

func TestRead_NoFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	content := Header + "\n2025-01-15T10:30:00Z,not-a-uuid,a.csv,csv,1,0,0,1,false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logs", "import-log.csv"), []byte(content), 0o644))

	_, err := Read(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch_id")
}

func TestUnmarshalEntry_WrongFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"a", "b"})
	assert.Error(t, err)
}
