package normalize

import (
	"regexp"
	"strings"
)

// minEntryLength filters out facet entries too short to carry meaning
// ("n/a", "tbd", stray list markers).
const minEntryLength = 4

var (
	bracketedRE   = regexp.MustCompile(`\[.*?\]`)
	parentheticRE = regexp.MustCompile(`\(.*?\)`)
	htmlTagRE     = regexp.MustCompile(`<.*?>`)
	urlRE         = regexp.MustCompile(`http[s]?://\S+`)
	whitespaceRE  = regexp.MustCompile(`\s+`)
)

// CleanText strips markup artifacts from scraped prose: bracketed citation
// markers, parenthetical asides, HTML tag remnants, and inline URLs.
// Whitespace is collapsed to single spaces.
func CleanText(text string) string {
	text = bracketedRE.ReplaceAllString(text, "")
	text = parentheticRE.ReplaceAllString(text, "")
	text = htmlTagRE.ReplaceAllString(text, "")
	text = urlRE.ReplaceAllString(text, "")
	text = whitespaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// splitEntries splits a raw facet value into individual entries. Values may
// arrive as prose blocks separated by newlines or sentence breaks.
func splitEntries(value string) []string {
	var entries []string
	for _, line := range strings.Split(value, "\n") {
		for _, part := range strings.Split(line, ". ") {
			part = strings.TrimSpace(part)
			if part != "" {
				entries = append(entries, part)
			}
		}
	}
	return entries
}

// normalizeEntries cleans, filters, and deduplicates facet entries.
// Deduplication is case-insensitive and order-preserving; the first spelling
// seen wins. Entries shorter than minEntryLength are dropped.
func normalizeEntries(values []string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, value := range values {
		for _, entry := range splitEntries(value) {
			entry = CleanText(entry)
			entry = strings.TrimSuffix(entry, ".")
			if len(entry) < minEntryLength {
				continue
			}
			key := strings.ToLower(entry)
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, entry)
		}
	}
	return result
}

// normalizeTopic lowercases and trims a topic string for use as an exact
// lookup key.
func normalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}
