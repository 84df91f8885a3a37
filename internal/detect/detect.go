// Package detect classifies bank statement files by name and content.
package detect

import (
	"path/filepath"
	"strings"
)

// FileType is the detected statement format.
type FileType string

const (
	CSV     FileType = "csv"
	OFX     FileType = "ofx"
	QFX     FileType = "qfx"
	Unknown FileType = "unknown"
)

var ofxMarkers = []string{"OFXHEADER", "<OFX>", "<?OFX"}

// Detect returns the statement format for filename and content.
// A known extension wins outright. Otherwise an OFX header marker anywhere
// in the content means OFX, and a delimiter on the first line means CSV.
func Detect(filename, content string) FileType {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "ofx":
		return OFX
	case "qfx":
		return QFX
	case "csv":
		return CSV
	}

	upper := strings.ToUpper(content)
	for _, marker := range ofxMarkers {
		if strings.Contains(upper, marker) {
			return OFX
		}
	}

	firstLine, _, _ := strings.Cut(content, "\n")
	if strings.ContainsAny(firstLine, ",;\t") {
		return CSV
	}
	return Unknown
}
