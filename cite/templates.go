package cite

import (
	"fmt"
	"strings"

	"github.com/poiesic/medcite/core"
)

// FormatCitation renders one evidence record as a citation line in the style
// its source type calls for. Journal citations carry the publication year
// when known; synthetic knowledge base URLs are not shown.
func FormatCitation(ev *core.Evidence) string {
	switch ev.Source {
	case core.SourceJournal:
		if ev.Year != "" {
			return fmt.Sprintf("%s (%s). %s %s", ev.SourceName, ev.Year, punctuated(ev.Title), ev.URL)
		}
		return fmt.Sprintf("%s. %s %s", ev.SourceName, punctuated(ev.Title), ev.URL)
	case core.SourceHealthSite:
		return fmt.Sprintf("%s. %s Retrieved from %s", ev.SourceName, punctuated(ev.Title), ev.URL)
	case core.SourceCommunity:
		return fmt.Sprintf("%s community discussion. %s %s", ev.SourceName, punctuated(ev.Title), ev.URL)
	case core.SourceCurated:
		return fmt.Sprintf("%s clinical reference. %s", ev.SourceName, punctuated(ev.Title))
	default:
		return fmt.Sprintf("%s. %s", ev.SourceName, punctuated(ev.Title))
	}
}

// punctuated ensures a title ends with terminal punctuation.
func punctuated(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return title
	}
	switch title[len(title)-1] {
	case '.', '!', '?':
		return title
	}
	return title + "."
}
