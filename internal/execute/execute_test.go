package execute

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bankimport/internal/model"
)

func row(desc string, selected bool) model.ImportableTransaction {
	return model.ImportableTransaction{
		ParsedTransaction: model.ParsedTransaction{
			Date:             "2024-01-15",
			Description:      desc,
			AmountMinorUnits: 500,
			IsExpense:        true,
		},
		BucketID:       "bucket-1",
		MappedCategory: model.CategoryDining,
		Selected:       selected,
	}
}

func TestExecute(t *testing.T) {
	withMemo := row("WALMART", true)
	withMemo.Memo = "PURCHASE"
	noBucket := row("Tea", true)
	noBucket.BucketID = ""

	rows := []model.ImportableTransaction{
		row("Coffee", true),
		row("Skipped", false),
		withMemo,
		noBucket,
	}
	out := Execute(rows, Options{PlanID: "plan-1", DefaultBucketID: "default-bucket", CurrencyCode: "USD"})
	require.Len(t, out, 3)

	assert.Equal(t, model.ExpensePayload{
		PlanID:           "plan-1",
		BucketID:         "bucket-1",
		Name:             "Coffee",
		AmountMinorUnits: 500,
		Category:         model.CategoryDining,
		Frequency:        model.FrequencyMonthly,
		IsFixed:          false,
		Notes:            "Imported from bank statement",
		TransactionDate:  "2024-01-15",
		CurrencyCode:     "USD",
	}, out[0])
	assert.Equal(t, "Imported: PURCHASE", out[1].Notes)
	assert.Equal(t, "default-bucket", out[2].BucketID)
}

func TestExecute_NameTruncation(t *testing.T) {
	long := strings.Repeat("ü", MaxNameLength+20)
	out := Execute([]model.ImportableTransaction{row(long, true)}, Options{})
	require.Len(t, out, 1)
	assert.Equal(t, MaxNameLength, len([]rune(out[0].Name)))

	exact := strings.Repeat("a", MaxNameLength)
	out = Execute([]model.ImportableTransaction{row(exact, true)}, Options{})
	assert.Equal(t, exact, out[0].Name)
}

func TestExecute_Frequency(t *testing.T) {
	out := Execute([]model.ImportableTransaction{row("x", true)}, Options{DefaultFrequency: model.FrequencyWeekly})
	require.Len(t, out, 1)
	assert.Equal(t, model.FrequencyWeekly, out[0].Frequency)
}

func TestExecute_InvalidCategoryBecomesOther(t *testing.T) {
	r := row("x", true)
	r.MappedCategory = "yachts"
	out := Execute([]model.ImportableTransaction{r}, Options{})
	require.Len(t, out, 1)
	assert.Equal(t, model.CategoryOther, out[0].Category)
}

func TestExecute_NothingSelected(t *testing.T) {
	assert.Empty(t, Execute([]model.ImportableTransaction{row("x", false)}, Options{}))
	assert.Empty(t, Execute(nil, Options{}))
}
