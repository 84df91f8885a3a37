package model

// ParsedTransaction is one normalized statement row. It is produced by the
// CSV and OFX parsers and never persisted directly.
type ParsedTransaction struct {
	Date             string `json:"date"` // YYYY-MM-DD
	Description      string `json:"description"`
	AmountMinorUnits int64  `json:"amountMinorUnits"` // always >= 0
	IsExpense        bool   `json:"isExpense"`
	Category         string `json:"category,omitempty"` // raw hint from the file
	Memo             string `json:"memo,omitempty"`
}

// ImportableTransaction is a ParsedTransaction decorated for review.
type ImportableTransaction struct {
	ParsedTransaction
	BucketID       string   `json:"bucketId"`
	MappedCategory Category `json:"mappedCategory"`
	IsDuplicate    bool     `json:"isDuplicate"`
	Selected       bool     `json:"selected"`
	Fingerprint    string   `json:"fingerprint"`
}

// DateRange is the inclusive span of ISO dates in a preview.
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// ImportPreview is the review-ready projection of a parsed statement.
type ImportPreview struct {
	Transactions   []ImportableTransaction `json:"transactions"`
	TotalCount     int                     `json:"totalCount"`
	ExpenseCount   int                     `json:"expenseCount"`
	IncomeCount    int                     `json:"incomeCount"`
	DuplicateCount int                     `json:"duplicateCount"`
	DateRange      *DateRange              `json:"dateRange"`
}
