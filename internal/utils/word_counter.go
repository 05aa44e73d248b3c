package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	fencedCode  = regexp.MustCompile("(?s)```.*?```")
	markdownURL = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	listMarker  = regexp.MustCompile(`^(?:[-*+]|\d+[.)])\s+`)
)

// CountWords counts the words of a markdown body, ignoring syntax
// and fenced code
func CountWords(markdown string) int {
	text := fencedCode.ReplaceAllString(markdown, " ")
	text = markdownURL.ReplaceAllString(text, "$1")

	count := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "#> ")
		line = listMarker.ReplaceAllString(line, "")

		for _, field := range strings.Fields(line) {
			if hasWordRune(field) {
				count++
			}
		}
	}
	return count
}

// ReadingMinutes estimates reading time at 200 words per minute, at least 1
// for any non-empty body
func ReadingMinutes(markdown string) int {
	words := CountWords(markdown)
	if words == 0 {
		return 0
	}
	return (words + 199) / 200
}

// Tokens made only of markup (---, **, |) are not words
func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
