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


package cite

import (
	"log/slog"

	"github.com/poiesic/medcite/core"
)

// Scorer turns ranked evidence into a citation bundle with a confidence
// score.
//
// Confidence is the mean relevance of the ranked results, plus a bounded
// bonus per distinct source name, plus a bounded bonus for the volume of
// evidence text, plus a one-time bonus when any source is a recognized
// authority. The final score is clamped to [0,1]. An empty result set
// reports the configured floor instead of zero, since "we found nothing"
// is itself weak information rather than certainty of absence.
type Scorer struct {
	config      Config
	authorities map[string]bool
	logger      *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithConfig replaces the default scoring configuration.
func WithConfig(config Config) Option {
	return func(s *Scorer) error {
		if err := config.Validate(); err != nil {
			return err
		}
		s.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a scorer with the default configuration.
func NewScorer(opts ...Option) (*Scorer, error) {
	s := &Scorer{
		config: DefaultConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.authorities = make(map[string]bool, len(s.config.Authorities))
	for _, name := range s.config.Authorities {
		s.authorities[name] = true
	}

	return s, nil
}

// Score builds a citation bundle from ranked evidence. Citations are taken
// from the top results in rank order, capped at MaxCitations; confidence is
// computed over all ranked results, not just the cited ones.
func (s *Scorer) Score(results []*core.RankedResult) *core.CitationBundle {
	bundle := &core.CitationBundle{}

	if len(results) == 0 {
		bundle.Confidence = s.config.EmptyConfidence
		return bundle
	}

	limit := s.config.MaxCitations
	if limit > len(results) {
		limit = len(results)
	}
	for _, result := range results[:limit] {
		bundle.Citations = append(bundle.Citations, FormatCitation(result.Evidence))
	}

	bundle.Confidence = s.confidence(results)
	return bundle
}

func (s *Scorer) confidence(results []*core.RankedResult) float32 {
	var relevanceSum float32
	sources := make(map[string]bool)
	hasAuthority := false
	textLength := 0

	for _, result := range results {
		relevanceSum += result.Relevance
		sources[result.Evidence.SourceName] = true
		if s.authorities[result.Evidence.SourceName] {
			hasAuthority = true
		}
		textLength += len(result.Evidence.Body)
		for _, entries := range result.Evidence.Facets {
			for _, entry := range entries {
				textLength += len(entry)
			}
		}
	}

	confidence := relevanceSum / float32(len(results))

	diversity := s.config.DiversityWeight * float32(len(sources))
	if diversity > s.config.DiversityCap {
		diversity = s.config.DiversityCap
	}
	confidence += diversity

	volume := s.config.LengthWeight * float32(textLength) / 1000
	if volume > s.config.LengthCap {
		volume = s.config.LengthCap
	}
	confidence += volume

	if hasAuthority {
		confidence += s.config.AuthorityBonus
	}

	if confidence > 1 {
		confidence = 1
	}
	if confidence < 0 {
		confidence = 0
	}

	s.logger.Debug("confidence computed",
		"results", len(results), "sources", len(sources),
		"authority", hasAuthority, "confidence", confidence)
	return confidence
}
