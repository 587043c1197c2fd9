// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package normalize

import (
	"fmt"
	"strings"

	"github.com/poiesic/medcite/core"
)

// Normalize converts a raw source record into a canonical evidence record.
// Text fields are cleaned of markup artifacts, the topic is lowercased into
// a lookup key, and facet values are split, cleaned, and deduplicated.
// Records missing a topic, title, URL, or source name are rejected with an
// error wrapping ErrRejected; unknown facet names are dropped silently.
func Normalize(raw *core.RawRecord) (*core.Evidence, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: record is nil", ErrRejected)
	}

	topic := normalizeTopic(raw.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: %w", ErrRejected, ErrMissingTopic)
	}

	title := CleanText(raw.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: %w", ErrRejected, ErrMissingTitle)
	}

	url := strings.TrimSpace(raw.URL)
	if url == "" {
		return nil, fmt.Errorf("%w: %w", ErrRejected, ErrMissingURL)
	}

	sourceName := strings.TrimSpace(raw.SourceName)
	if sourceName == "" {
		return nil, fmt.Errorf("%w: %w", ErrRejected, ErrMissingSourceName)
	}

	if err := core.ValidateSourceType(raw.Source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRejected, err)
	}

	ev := &core.Evidence{
		Id:         core.IDFromURL(url),
		Topic:      topic,
		Title:      title,
		Body:       CleanText(raw.Body),
		Source:     raw.Source,
		SourceName: sourceName,
		URL:        url,
		Year:       strings.TrimSpace(raw.Year),
	}

	for _, name := range core.FacetNames {
		entries := normalizeEntries(raw.Facets[name])
		if len(entries) == 0 {
			continue
		}
		if ev.Facets == nil {
			ev.Facets = make(map[string][]string)
		}
		ev.Facets[name] = entries
	}

	return ev, nil
}

// NormalizeAll normalizes a batch of raw records, partitioning them into
// accepted evidence and per-record rejection errors. Order is preserved for
// the accepted records.
func NormalizeAll(raws []*core.RawRecord) ([]*core.Evidence, []error) {
	var (
		accepted []*core.Evidence
		rejected []error
	)
	for _, raw := range raws {
		ev, err := Normalize(raw)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		accepted = append(accepted, ev)
	}
	return accepted, rejected
}

// Deduplicate collapses records sharing a URL, keeping the most recently
// retrieved one. For records with equal timestamps the later occurrence in
// the slice wins. Order of first occurrence is preserved.
func Deduplicate(records []*core.Evidence) []*core.Evidence {
	byURL := make(map[string]int)
	var result []*core.Evidence
	for _, record := range records {
		idx, exists := byURL[record.URL]
		if !exists {
			byURL[record.URL] = len(result)
			result = append(result, record)
			continue
		}
		if !record.RetrievedAt.Before(result[idx].RetrievedAt) {
			result[idx] = record
		}
	}
	return result
}
