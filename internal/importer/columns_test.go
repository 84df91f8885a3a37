package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   ColumnMapping
		ok     bool
	}{
		{
			name:   "exact names",
			header: []string{"Date", "Description", "Amount"},
			want:   ColumnMapping{Date: 0, Description: 1, Amount: 2, Category: NoColumn},
			ok:     true,
		},
		{
			name:   "reordered with category",
			header: []string{"Amount", "Category", "Payee", "Transaction Date"},
			want:   ColumnMapping{Date: 3, Description: 2, Amount: 0, Category: 1},
			ok:     true,
		},
		{
			name:   "case and whitespace",
			header: []string{"  POSTED DATE ", "MERCHANT", " Value"},
			want:   ColumnMapping{Date: 0, Description: 1, Amount: 2, Category: NoColumn},
			ok:     true,
		},
		{
			name:   "debit column counts as amount",
			header: []string{"Date", "Narrative", "Debit", "Classification"},
			want:   ColumnMapping{Date: 0, Description: 1, Amount: 2, Category: 3},
			ok:     true,
		},
		{
			name:   "missing amount",
			header: []string{"Date", "Description", "Balance"},
			ok:     false,
		},
		{
			name:   "data row is not a header",
			header: []string{"2024-01-15", "Coffee", "-5.00"},
			ok:     false,
		},
		{
			name:   "empty cells never match",
			header: []string{"", "Date", "Memo", "Amount"},
			want:   ColumnMapping{Date: 1, Description: 2, Amount: 3, Category: NoColumn},
			ok:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InferColumns(tt.header)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestInferColumns_ClaimedColumnNotReused(t *testing.T) {
	m, ok := InferColumns([]string{"Amount Date", "Payee", "Amount"})
	assert.True(t, ok)
	assert.Equal(t, 0, m.Date)
	assert.Equal(t, 2, m.Amount)
}

func TestInferColumns_SynonymOrderWins(t *testing.T) {
	m, ok := InferColumns([]string{"Date", "Memo", "Description", "Amount"})
	assert.True(t, ok)
	assert.Equal(t, 2, m.Description)
}

func TestCell(t *testing.T) {
	rec := []string{" a ", "b"}
	assert.Equal(t, "a", cell(rec, 0))
	assert.Equal(t, "b", cell(rec, 1))
	assert.Equal(t, "", cell(rec, 2))
	assert.Equal(t, "", cell(rec, NoColumn))
}
