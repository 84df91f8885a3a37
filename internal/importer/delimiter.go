package importer

import "strings"

const delimiterSampleLines = 5

var delimiterCandidates = []rune{',', ';', '\t'}

// DetectDelimiter picks the field separator of a CSV export.
//
// Each candidate is counted outside quoted spans on the first five non-empty
// lines. A count that is identical and non-zero on every line scores ten
// times the count; otherwise the score is the smallest per-line count.
// The highest score wins and comma wins ties.
func DetectDelimiter(content string) rune {
	lines := sampleLines(content, delimiterSampleLines)
	if len(lines) == 0 {
		return ','
	}

	best, bestScore := ',', 0
	for _, d := range delimiterCandidates {
		if score := delimiterScore(lines, d); score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

func delimiterScore(lines []string, d rune) int {
	first := countOutsideQuotes(lines[0], d)
	minCount, consistent := first, true
	for _, line := range lines[1:] {
		n := countOutsideQuotes(line, d)
		if n != first {
			consistent = false
		}
		minCount = min(minCount, n)
	}
	if consistent && first > 0 {
		return first * 10
	}
	return minCount
}

func countOutsideQuotes(line string, d rune) int {
	n, quoted := 0, false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == d && !quoted:
			n++
		}
	}
	return n
}

func sampleLines(content string, limit int) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == limit {
			break
		}
	}
	return lines
}
