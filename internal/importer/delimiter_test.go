package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    rune
	}{
		{"comma", "a,b,c\n1,2,3", ','},
		{"semicolon", "a;b;c\n1;2;3", ';'},
		{"tab", "a\tb\tc\n1\t2\t3", '\t'},
		{"empty", "", ','},
		{"no candidates", "hello\nworld", ','},
		{"quoted commas ignored", "a;b\n\"1,5\";2\n\"3,25\";4", ';'},
		{"consistent beats frequent", "a;b,c,d\n1;2,3\n4;5,6,7,8", ';'},
		{"crlf", "a;b\r\n1;2\r\n", ';'},
		{"blank lines skipped", "\n\na\tb\n\n1\t2\n", '\t'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDelimiter(tt.content))
		})
	}
}

func TestDetectDelimiter_OnlyFirstFiveLines(t *testing.T) {
	content := "a;b\n1;2\n3;4\n5;6\n7;8\n9,10,11,12,13,14\n"
	assert.Equal(t, ';', DetectDelimiter(content))
}

func TestCountOutsideQuotes(t *testing.T) {
	assert.Equal(t, 2, countOutsideQuotes(`a,"b,c",d`, ','))
	assert.Equal(t, 0, countOutsideQuotes(`"a,b,c"`, ','))
	assert.Equal(t, 3, countOutsideQuotes(`a,"say ""hi""",b,`, ','))
}
