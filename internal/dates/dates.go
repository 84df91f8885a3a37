// Package dates normalizes bank statement dates into ISO YYYY-MM-DD form.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Format is a recognized date layout.
type Format string

const (
	ISO  Format = "iso"  // YYYY-MM-DD
	US   Format = "us"   // MM/DD/YYYY
	EU   Format = "eu"   // DD/MM/YYYY
	Auto Format = "auto" // decided per value
)

// MaxInferenceSamples caps how many values Infer looks at.
const MaxInferenceSamples = 10

var (
	isoPattern   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[T ].*)?$`)
	slashPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	ofxPattern   = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})`)
)

// Parse converts s in the given format to an ISO date. Auto tries ISO, US
// and then an OFX YYYYMMDD prefix.
func Parse(s string, format Format) (string, bool) {
	s = strings.TrimSpace(s)
	switch format {
	case ISO:
		return parseISO(s)
	case US:
		return parseSlash(s, false)
	case EU:
		return parseSlash(s, true)
	case Auto:
		return ParseAuto(s)
	}
	return "", false
}

// ParseAuto parses s without a known format.
func ParseAuto(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if iso, ok := parseISO(s); ok {
		return iso, true
	}
	if iso, ok := parseSlash(s, false); ok {
		return iso, true
	}
	return ParseOFX(s)
}

// ParseOFX reads the leading YYYYMMDD of an OFX datetime such as
// "20240115120000.000[-5:EST]".
func ParseOFX(s string) (string, bool) {
	m := ofxPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	return build(m[1], m[2], m[3])
}

// Render formats an ISO date in the given layout. It is the inverse of
// Parse for ISO, US and EU.
func Render(iso string, format Format) (string, error) {
	m := isoPattern.FindStringSubmatch(iso)
	if m == nil {
		return "", fmt.Errorf("not an ISO date: %q", iso)
	}
	y, mo, d := m[1], pad(m[2]), pad(m[3])
	switch format {
	case ISO, Auto:
		return y + "-" + mo + "-" + d, nil
	case US:
		return mo + "/" + d + "/" + y, nil
	case EU:
		return d + "/" + mo + "/" + y, nil
	}
	return "", fmt.Errorf("unknown date format %q", format)
}

// Infer picks a format from sample values. The first sample that only one
// format accepts decides; when none does the result is Auto.
func Infer(samples []string) Format {
	if len(samples) > MaxInferenceSamples {
		samples = samples[:MaxInferenceSamples]
	}
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if _, ok := parseISO(s); ok {
			return ISO
		}
		_, usOK := parseSlash(s, false)
		_, euOK := parseSlash(s, true)
		switch {
		case usOK && !euOK:
			return US
		case euOK && !usOK:
			return EU
		}
	}
	return Auto
}

func parseISO(s string) (string, bool) {
	m := isoPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return build(m[1], m[2], m[3])
}

func parseSlash(s string, dayFirst bool) (string, bool) {
	m := slashPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	if dayFirst {
		return build(m[3], m[2], m[1])
	}
	return build(m[3], m[1], m[2])
}

func build(year, month, day string) (string, bool) {
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return "", false
	}
	return fmt.Sprintf("%s-%02d-%02d", year, mo, d), true
}

func pad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
