package model

// ExistingExpense is the read-only view of a stored expense used for
// duplicate detection.
type ExistingExpense struct {
	TransactionDate  string // YYYY-MM-DD, empty when unknown
	CreatedAt        string // RFC 3339 timestamp
	AmountMinorUnits int64
	Name             string
}

// ExpensePayload is a persistable expense without its identifier. The
// store assigns the ID when it writes the record.
type ExpensePayload struct {
	PlanID           string    `json:"planId" csv:"plan_id"`
	BucketID         string    `json:"bucketId" csv:"bucket_id"`
	Name             string    `json:"name" csv:"name"`
	AmountMinorUnits int64     `json:"amountMinorUnits" csv:"amount_minor_units"`
	Category         Category  `json:"category" csv:"category"`
	Frequency        Frequency `json:"frequency" csv:"frequency"`
	IsFixed          bool      `json:"isFixed" csv:"is_fixed"`
	Notes            string    `json:"notes" csv:"notes"`
	TransactionDate  string    `json:"transactionDate" csv:"transaction_date"`
	CurrencyCode     string    `json:"currencyCode,omitempty" csv:"currency_code"`
}
