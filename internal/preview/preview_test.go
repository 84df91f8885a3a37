package preview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bankimport/internal/categorize"
	"github.com/cleared-dev/bankimport/internal/dedup"
	"github.com/cleared-dev/bankimport/internal/model"
)

func sampleTxns() []model.ParsedTransaction {
	return []model.ParsedTransaction{
		{Date: "2024-01-15", Description: "Coffee Shop", AmountMinorUnits: 500, IsExpense: true},
		{Date: "2024-01-03", Description: "STARBUCKS", AmountMinorUnits: 675, IsExpense: true},
		{Date: "2024-01-31", Description: "ACME PAYROLL", AmountMinorUnits: 150000, IsExpense: false, Category: "savings"},
		{Date: "2024-01-20", Description: "RANDOM MERCHANT XYZ", AmountMinorUnits: 1999, IsExpense: true, Category: "Travel"},
	}
}

func TestBuild_DuplicateCoffeeShop(t *testing.T) {
	existing := []model.ExistingExpense{
		{TransactionDate: "2024-01-15", AmountMinorUnits: 500, Name: "Coffee Shop"},
	}
	txns := []model.ParsedTransaction{
		{Date: "2024-01-15", AmountMinorUnits: 500, Description: "Coffee Shop", IsExpense: true},
	}

	p := Build(txns, existing, "bucket-1", Options{})
	assert.Equal(t, 1, p.DuplicateCount)
	require.Len(t, p.Transactions, 1)
	assert.True(t, p.Transactions[0].IsDuplicate)
	assert.False(t, p.Transactions[0].Selected)
	assert.Equal(t, "2024-01-15|500|coffee shop", p.Transactions[0].Fingerprint)
}

func TestBuild(t *testing.T) {
	p := Build(sampleTxns(), nil, "bucket-1", Options{})

	assert.Equal(t, 4, p.TotalCount)
	assert.Equal(t, 3, p.ExpenseCount)
	assert.Equal(t, 1, p.IncomeCount)
	assert.Equal(t, 0, p.DuplicateCount)
	require.NotNil(t, p.DateRange)
	assert.Equal(t, model.DateRange{Earliest: "2024-01-03", Latest: "2024-01-31"}, *p.DateRange)

	rows := p.Transactions
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, "bucket-1", r.BucketID)
	}

	assert.Equal(t, model.CategoryDining, rows[0].MappedCategory)
	assert.Equal(t, model.CategoryDining, rows[1].MappedCategory)
	assert.Equal(t, model.CategorySavings, rows[2].MappedCategory)
	// the hint wins over the description
	assert.Equal(t, model.CategoryTravel, rows[3].MappedCategory)

	assert.True(t, rows[0].Selected)
	assert.True(t, rows[1].Selected)
	assert.False(t, rows[2].Selected, "income is never preselected")
	assert.True(t, rows[3].Selected)
	assert.Equal(t, 3, SelectedCount(p))
}

func TestBuild_Empty(t *testing.T) {
	p := Build(nil, nil, "bucket-1", Options{})
	assert.Equal(t, 0, p.TotalCount)
	assert.Nil(t, p.DateRange)
	assert.Empty(t, p.Transactions)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dateRange":null`)
}

func TestBuild_Idempotent(t *testing.T) {
	existing := []model.ExistingExpense{
		{CreatedAt: "2024-01-03T10:00:00Z", AmountMinorUnits: 675, Name: "Starbucks"},
	}
	a := Build(sampleTxns(), existing, "b", Options{})
	b := Build(sampleTxns(), existing, "b", Options{})
	assert.Equal(t, a, b)
	assert.Equal(t, 1, a.DuplicateCount)
	assert.False(t, a.Transactions[1].Selected)
}

func TestBuild_UnrecognizedHintIsOther(t *testing.T) {
	txns := []model.ParsedTransaction{
		{Date: "2024-01-15", Description: "STARBUCKS", AmountMinorUnits: 500, IsExpense: true, Category: "Zzz Unknown"},
	}
	p := Build(txns, nil, "b", Options{})
	require.Len(t, p.Transactions, 1)
	assert.Equal(t, model.CategoryOther, p.Transactions[0].MappedCategory)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	txns := sampleTxns()
	before := sampleTxns()
	Build(txns, nil, "b", Options{})
	assert.Equal(t, before, txns)
}

func TestBuild_CustomCollaborators(t *testing.T) {
	cat, err := categorize.New([]byte("rules:\n  - category: gifts\n    keywords: [coffee]\n"))
	require.NoError(t, err)

	existing := []model.ExistingExpense{
		{TransactionDate: "2024-01-15", AmountMinorUnits: 500, Name: "Coffee Shop Downtown"},
	}
	txns := []model.ParsedTransaction{
		{Date: "2024-01-15", AmountMinorUnits: 500, Description: "Coffee Shop Uptown", IsExpense: true},
	}

	p := Build(txns, existing, "b", Options{Categorizer: cat, Deduplicator: dedup.New(11)})
	require.Len(t, p.Transactions, 1)
	assert.Equal(t, model.CategoryGifts, p.Transactions[0].MappedCategory)
	assert.True(t, p.Transactions[0].IsDuplicate)
}

func TestSetSelected(t *testing.T) {
	p := Build(sampleTxns(), nil, "b", Options{})

	q := SetSelected(p, 2, true)
	assert.Equal(t, 4, SelectedCount(q))
	assert.Equal(t, 3, SelectedCount(p), "original preview is unchanged")

	assert.Equal(t, p, SetSelected(p, 99, true))
	assert.Equal(t, p, SetSelected(p, -1, true))
}

func TestRecount(t *testing.T) {
	rows := []model.ImportableTransaction{
		{ParsedTransaction: model.ParsedTransaction{Date: "2024-02-01", IsExpense: true}, IsDuplicate: true},
		{ParsedTransaction: model.ParsedTransaction{Date: "2024-01-01"}},
	}
	p := Recount(rows)
	assert.Equal(t, 2, p.TotalCount)
	assert.Equal(t, 1, p.ExpenseCount)
	assert.Equal(t, 1, p.IncomeCount)
	assert.Equal(t, 1, p.DuplicateCount)
	assert.Equal(t, &model.DateRange{Earliest: "2024-01-01", Latest: "2024-02-01"}, p.DateRange)
}
