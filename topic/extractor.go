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


package topic

import (
	"strings"

	"github.com/poiesic/medcite/core"
)

// Conditions lists the medical conditions the engine recognizes in queries.
// Multi-word conditions must appear before their single-word prefixes so the
// longest match wins.
var Conditions = []string{
	"heart disease",
	"diabetes",
	"hypertension",
	"cancer",
	"stroke",
	"depression",
	"anxiety",
	"arthritis",
	"asthma",
	"migraine",
	"covid",
	"flu",
	"cold",
	"pneumonia",
	"bronchitis",
}

// intentKeywords maps facet names to the query words that signal them.
var intentKeywords = map[string][]string{
	core.FacetSymptoms:   {"symptom", "symptoms", "sign", "signs", "feel", "feeling"},
	core.FacetTreatments: {"treatment", "treatments", "cure", "medication", "medications", "drug", "drugs", "therapy"},
	core.FacetCauses:     {"cause", "causes", "reason", "reasons", "why"},
	core.FacetPrevention: {"prevent", "prevention", "preventing", "avoid", "avoiding"},
}

// Stop words to filter out when extracting residual query terms
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "what": true, "how": true, "can": true, "i": true,
	"my": true, "me": true, "about": true,
}

// Analysis is the result of interpreting a user query.
type Analysis struct {
	// Condition is the recognized condition, lowercased.
	Condition string

	// Intent names the facet the query asks about, or "" for a general query.
	Intent string

	// Terms holds the residual query words after removing the condition,
	// intent keywords, and stop words.
	Terms []string
}

// SearchQuery builds the text used for index lookups: the condition plus the
// intent keyword when one was recognized.
func (a *Analysis) SearchQuery() string {
	if a.Intent == "" {
		return a.Condition
	}
	return a.Condition + " " + a.Intent
}

// Extract analyzes a free-text query, identifying the condition it asks
// about and the kind of information wanted. Returns ErrNoCondition when no
// known condition appears in the query.
func Extract(query string) (*Analysis, error) {
	lowered := strings.ToLower(query)

	var condition string
	for _, candidate := range Conditions {
		if strings.Contains(lowered, candidate) {
			condition = candidate
			break
		}
	}
	if condition == "" {
		return nil, ErrNoCondition
	}

	analysis := &Analysis{Condition: condition}

	words := tokenize(lowered)
	wordSet := make(map[string]bool, len(words))
	for _, w := range words {
		wordSet[w] = true
	}

	for _, facet := range []string{core.FacetSymptoms, core.FacetTreatments, core.FacetCauses, core.FacetPrevention} {
		for _, keyword := range intentKeywords[facet] {
			if wordSet[keyword] {
				analysis.Intent = facet
				break
			}
		}
		if analysis.Intent != "" {
			break
		}
	}

	conditionWords := make(map[string]bool)
	for _, w := range strings.Fields(condition) {
		conditionWords[w] = true
	}
	keywordSet := make(map[string]bool)
	if analysis.Intent != "" {
		for _, keyword := range intentKeywords[analysis.Intent] {
			keywordSet[keyword] = true
		}
	}

	for _, w := range words {
		if conditionWords[w] || keywordSet[w] {
			continue
		}
		analysis.Terms = append(analysis.Terms, w)
	}

	return analysis, nil
}

// tokenize splits text into words, trims punctuation, and removes stop words.
func tokenize(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}
