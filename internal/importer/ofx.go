package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/cleared-dev/bankimport/internal/amount"
	"github.com/cleared-dev/bankimport/internal/dates"
	"github.com/cleared-dev/bankimport/internal/detect"
	"github.com/cleared-dev/bankimport/internal/model"
)

// UnknownDescription is used when a block has neither NAME nor MEMO.
const UnknownDescription = "Unknown Transaction"

// OFXParser extracts transactions from OFX and QFX statements. It reads the
// SGML tag soup directly instead of validating the document, so files with
// missing closing tags or headers still import.
type OFXParser struct {
	fileType detect.FileType
}

// Format returns the parser's file type.
func (p *OFXParser) Format() detect.FileType { return p.fileType }

var (
	stmtTrnPattern = regexp.MustCompile(`(?is)<STMTTRN>(.*?)</STMTTRN>`)
	fieldPatterns  = map[string]*regexp.Regexp{}
	entityReplacer = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

func init() {
	for _, tag := range []string{"DTPOSTED", "TRNAMT", "NAME", "MEMO", "TRNTYPE"} {
		// OFX 1.x often omits closing tags, so a value runs to the next tag or line end.
		fieldPatterns[tag] = regexp.MustCompile(`(?i)<` + tag + `>([^<\r\n]*)`)
	}
}

// Parse extracts every STMTTRN block. Blocks without a usable date or
// amount are skipped.
func (p *OFXParser) Parse(content string, _ Options) Result {
	var res Result
	for i, m := range stmtTrnPattern.FindAllStringSubmatch(content, -1) {
		res.Rows = append(res.Rows, extractBlock(i+1, m[1]))
	}
	return res
}

func extractBlock(index int, block string) RowResult {
	skip := func(reason string) RowResult {
		return RowResult{Line: index, Status: RowSkipped, Reason: reason}
	}

	rawDate := field(block, "DTPOSTED")
	rawAmount := field(block, "TRNAMT")
	switch {
	case rawDate == "":
		return skip("missing DTPOSTED")
	case rawAmount == "":
		return skip("missing TRNAMT")
	}

	date, ok := dates.ParseOFX(rawDate)
	if !ok {
		return skip(fmt.Sprintf("unparseable DTPOSTED %q", rawDate))
	}
	amt, err := amount.Parse(rawAmount)
	if err != nil {
		return skip(fmt.Sprintf("unparseable TRNAMT %q", rawAmount))
	}

	name, memo := field(block, "NAME"), field(block, "MEMO")
	desc := name
	if desc == "" {
		desc = memo
	}
	if desc == "" {
		desc = UnknownDescription
	}
	if memo == desc {
		memo = ""
	}

	txn := model.ParsedTransaction{
		Date:             date,
		Description:      desc,
		AmountMinorUnits: amt.MinorUnits,
		IsExpense:        amt.Negative,
		Memo:             memo,
	}
	if trnType := field(block, "TRNTYPE"); trnType != "" {
		txn.Category = string(TrnTypeCategory(trnType))
	}
	return RowResult{Line: index, Status: RowParsed, Transaction: txn}
}

func field(block, tag string) string {
	m := fieldPatterns[tag].FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(entityReplacer.Replace(m[1]))
}

// TrnTypeCategory maps an OFX TRNTYPE value to a category hint.
// Unrecognized types map to other.
func TrnTypeCategory(raw string) model.Category {
	var txn ofxgo.Transaction
	if err := txn.TrnType.FromString(strings.ToUpper(strings.TrimSpace(raw))); err != nil {
		return model.CategoryOther
	}
	switch txn.TrnType {
	case ofxgo.TrnTypeFee, ofxgo.TrnTypeSrvChg:
		return model.CategoryOther
	case ofxgo.TrnTypeInt, ofxgo.TrnTypeDiv:
		return model.CategorySavings
	case ofxgo.TrnTypePOS:
		return model.CategoryPersonal
	case ofxgo.TrnTypeATM:
		return model.CategoryOther
	case ofxgo.TrnTypePayment:
		return model.CategoryDebtPayment
	case ofxgo.TrnTypeDep, ofxgo.TrnTypeDirectDep:
		return model.CategorySavings
	default:
		return model.CategoryOther
	}
}
