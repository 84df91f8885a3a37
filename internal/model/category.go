package model

import "strings"

// Category is the closed expense category enumeration.
type Category string

const (
	CategoryHousing        Category = "housing"
	CategoryUtilities      Category = "utilities"
	CategoryGroceries      Category = "groceries"
	CategoryDining         Category = "dining"
	CategoryTransportation Category = "transportation"
	CategoryHealthcare     Category = "healthcare"
	CategoryInsurance      Category = "insurance"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategoryPersonal       Category = "personal"
	CategoryEducation      Category = "education"
	CategorySubscriptions  Category = "subscriptions"
	CategoryDebtPayment    Category = "debt_payment"
	CategorySavings        Category = "savings"
	CategoryTravel         Category = "travel"
	CategoryGifts          Category = "gifts"
	CategoryOther          Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryHousing, CategoryUtilities, CategoryGroceries, CategoryDining,
	CategoryTransportation, CategoryHealthcare, CategoryInsurance,
	CategoryEntertainment, CategoryShopping, CategoryPersonal,
	CategoryEducation, CategorySubscriptions, CategoryDebtPayment,
	CategorySavings, CategoryTravel, CategoryGifts, CategoryOther,
}

// Valid reports whether c is a member of the enumeration.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s against the enumeration, ignoring case and
// surrounding whitespace. Spaces and hyphens are read as underscores.
func ParseCategory(s string) (Category, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	c := Category(norm)
	if !c.Valid() {
		return "", false
	}
	return c, true
}

// Frequency is the recurrence of a persisted expense.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
	FrequencyOneTime   Frequency = "one_time"
)

// Valid reports whether f is a known recurrence.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencyYearly, FrequencyOneTime:
		return true
	}
	return false
}
