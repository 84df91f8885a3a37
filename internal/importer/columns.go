package importer

import "strings"

// NoColumn marks an unmapped optional role.
const NoColumn = -1

// ColumnMapping holds zero-based column indexes for each role.
type ColumnMapping struct {
	Date        int `json:"date"`
	Description int `json:"description"`
	Amount      int `json:"amount"`
	Category    int `json:"category"` // NoColumn when absent
}

// PositionalMapping is used when a file has no recognizable header.
var PositionalMapping = ColumnMapping{Date: 0, Description: 1, Amount: 2, Category: NoColumn}

// Role is a semantic column kind.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleAmount      Role = "amount"
	RoleCategory    Role = "category"
)

type roleSynonyms struct {
	role     Role
	required bool
	synonyms []string
}

// columnRoles is searched in order; extend the synonym lists to support new
// bank export dialects.
var columnRoles = []roleSynonyms{
	{RoleDate, true, []string{"date", "transaction date", "posted date", "trans date"}},
	{RoleDescription, true, []string{"description", "memo", "name", "payee", "merchant", "narrative"}},
	{RoleAmount, true, []string{"amount", "debit", "credit", "sum", "value", "transaction amount"}},
	{RoleCategory, false, []string{"category", "type", "classification"}},
}

// InferColumns maps header cells to roles. A cell matches a synonym when it
// equals, contains or is contained by it; synonyms are tried in list order
// and a column is claimed by at most one role. It fails unless date,
// description and amount all resolve.
func InferColumns(header []string) (ColumnMapping, bool) {
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = strings.ToLower(strings.TrimSpace(h))
	}

	claimed := make(map[int]bool)
	found := make(map[Role]int)
	for _, rs := range columnRoles {
		idx := matchRole(cells, rs.synonyms, claimed)
		if idx == NoColumn {
			if rs.required {
				return ColumnMapping{}, false
			}
			continue
		}
		claimed[idx] = true
		found[rs.role] = idx
	}

	m := ColumnMapping{
		Date:        found[RoleDate],
		Description: found[RoleDescription],
		Amount:      found[RoleAmount],
		Category:    NoColumn,
	}
	if idx, ok := found[RoleCategory]; ok {
		m.Category = idx
	}
	return m, true
}

func matchRole(cells, synonyms []string, claimed map[int]bool) int {
	for _, syn := range synonyms {
		for i, cell := range cells {
			if cell == "" || claimed[i] {
				continue
			}
			if cell == syn || strings.Contains(cell, syn) || strings.Contains(syn, cell) {
				return i
			}
		}
	}
	return NoColumn
}

// cell returns the trimmed value at idx, or "" when out of range.
func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
