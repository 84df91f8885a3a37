// Package categorize maps free-text descriptions and supplied category hints
// to the closed set of expense categories.
package categorize

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bankimport/internal/model"
)

//go:embed categories.yaml
var embeddedTable []byte

// Rule assigns a category to any text containing one of its keywords.
type Rule struct {
	Category model.Category `yaml:"category"`
	Keywords []string       `yaml:"keywords"`
}

// Table is the YAML layout of a category table.
type Table struct {
	Rules    []Rule            `yaml:"rules"`
	Synonyms map[string]string `yaml:"synonyms"`
}

// Categorizer resolves categories from an ordered keyword table and a
// synonym dictionary. It is immutable after construction.
type Categorizer struct {
	rules    []Rule
	synonyms map[string]model.Category
}

// New builds a Categorizer from YAML table data.
func New(data []byte) (*Categorizer, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing category table: %w", err)
	}

	c := &Categorizer{synonyms: make(map[string]model.Category, len(table.Synonyms))}
	for i, rule := range table.Rules {
		if !rule.Category.Valid() {
			return nil, fmt.Errorf("rule %d: invalid category %q", i, rule.Category)
		}
		var keywords []string
		for _, kw := range rule.Keywords {
			kw = normalize(kw)
			if kw == "" {
				return nil, fmt.Errorf("rule %d (%s): empty keyword", i, rule.Category)
			}
			keywords = append(keywords, kw)
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no keywords", i, rule.Category)
		}
		c.rules = append(c.rules, Rule{Category: rule.Category, Keywords: keywords})
	}
	for name, target := range table.Synonyms {
		cat, ok := model.ParseCategory(target)
		if !ok {
			return nil, fmt.Errorf("synonym %q: invalid category %q", name, target)
		}
		c.synonyms[normalize(name)] = cat
	}
	return c, nil
}

// LoadEmbedded builds the Categorizer from the table compiled into the binary.
func LoadEmbedded() (*Categorizer, error) {
	c, err := New(embeddedTable)
	if err != nil {
		return nil, fmt.Errorf("loading embedded categories: %w", err)
	}
	return c, nil
}

// LoadFromFile builds a Categorizer from a table on disk.
func LoadFromFile(path string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}
	c, err := New(data)
	if err != nil {
		return nil, fmt.Errorf("loading categories from %q: %w", path, err)
	}
	return c, nil
}

// Default returns the embedded Categorizer. It panics if the embedded table
// is invalid, which only a broken build can cause.
func Default() *Categorizer {
	c, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return c
}

// FromDescription returns the category of the first rule with a keyword
// contained in desc, or other.
func (c *Categorizer) FromDescription(desc string) model.Category {
	if cat, ok := c.scan(desc); ok {
		return cat
	}
	return model.CategoryOther
}

// FromHint resolves a supplied category or type string: canonical names and
// dictionary synonyms first, then the keyword scan. ok is false when nothing
// recognized the hint.
func (c *Categorizer) FromHint(hint string) (model.Category, bool) {
	h := normalize(hint)
	if h == "" {
		return model.CategoryOther, false
	}
	if cat, ok := model.ParseCategory(h); ok {
		return cat, true
	}
	if cat, ok := c.synonyms[h]; ok {
		return cat, true
	}
	if cat, ok := c.scan(h); ok {
		return cat, true
	}
	return model.CategoryOther, false
}

// Resolve categorizes by the hint when there is one and by the description
// otherwise. A hint nothing recognizes is other.
func (c *Categorizer) Resolve(hint, desc string) model.Category {
	if normalize(hint) != "" {
		cat, _ := c.FromHint(hint)
		return cat
	}
	return c.FromDescription(desc)
}

// Rules returns a copy of the keyword rules in evaluation order.
func (c *Categorizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

func (c *Categorizer) scan(text string) (model.Category, bool) {
	t := normalize(text)
	if t == "" {
		return "", false
	}
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(t, kw) {
				return rule.Category, true
			}
		}
	}
	return "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
