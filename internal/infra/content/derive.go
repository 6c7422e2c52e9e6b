package content

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	wordsPerMinute   = 200
	excerptMinLength = 60
	excerptMaxLength = 240
)

var (
	headingOrQuote = regexp.MustCompile(`(?m)^[#>].*$`)
	blankLines     = regexp.MustCompile(`\n\n+`)
)

func wordCount(body string) int {
	return len(strings.Fields(body))
}

func readTime(words int) int {
	return max(1, int(math.Round(float64(words)/wordsPerMinute)))
}

// excerpt takes the first paragraph long enough to say something, skipping
// headings and quotes.
func excerpt(body string) string {
	text := strings.TrimSpace(headingOrQuote.ReplaceAllString(body, ""))
	var para string
	for _, p := range blankLines.Split(text, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(p)) > excerptMinLength {
			para = p
			break
		}
	}
	flat := strings.ReplaceAll(para, "\n", " ")
	runes := []rune(flat)
	if len(runes) <= excerptMaxLength {
		return strings.TrimSpace(flat)
	}
	return strings.TrimSpace(string(runes[:excerptMaxLength])) + "…"
}
