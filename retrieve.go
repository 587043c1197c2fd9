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


package medcite

import (
	"context"
	"errors"

	"github.com/poiesic/medcite/core"
	"github.com/poiesic/medcite/ingest"
	"github.com/poiesic/medcite/topic"
)

// fallbackCitation is returned when no recognized condition appears in the
// query.
const fallbackCitation = "No recognized medical condition found in the query. Please specify a condition, for example diabetes or hypertension."

// fallbackConfidence reflects that an unrecognized query is ambiguous, not
// evidence of absence.
const fallbackConfidence = 0.5

// Ingest fans the condition out to every configured source, then normalizes,
// embeds, and stores whatever arrives. Per-source failures are logged and
// reported in the stats path as missing records rather than as errors.
func (e *Engine) Ingest(ctx context.Context, condition string) (*ingest.Stats, error) {
	result := e.orchestrator.FetchAll(ctx, condition)
	for name, err := range result.Failures {
		e.logger.Warn("source unavailable during ingest", "source", name, "err", err)
	}
	return e.pipeline.Ingest(ctx, result.Records)
}

// IngestRecords runs the ingestion pipeline over records the caller already
// has, bypassing the source orchestrator.
func (e *Engine) IngestRecords(ctx context.Context, records []*core.RawRecord) (*ingest.Stats, error) {
	return e.pipeline.Ingest(ctx, records)
}

// Retrieve answers a free-text medical query with ranked evidence, formatted
// citations, and a confidence score.
//
// The flow is: extract the condition from the query, fetch and ingest fresh
// evidence from the sources, run the hybrid search, then score the merged
// results. Failures after topic extraction degrade the bundle instead of
// failing the call; a query with no recognizable condition gets a fallback
// bundle asking the user to name one.
func (e *Engine) Retrieve(ctx context.Context, query string) (*core.EvidenceBundle, error) {
	analysis, err := topic.Extract(query)
	if err != nil {
		if errors.Is(err, topic.ErrNoCondition) {
			e.logger.Info("no condition recognized in query", "query", query)
			return &core.EvidenceBundle{
				Citations:  []string{fallbackCitation},
				Confidence: fallbackConfidence,
			}, nil
		}
		return nil, err
	}

	e.logger.Debug("query analyzed",
		"condition", analysis.Condition, "intent", analysis.Intent, "terms", analysis.Terms)

	if _, err := e.Ingest(ctx, analysis.Condition); err != nil {
		// Stale corpus is still a corpus; search what we have.
		e.logger.Warn("ingest failed, searching existing corpus", "condition", analysis.Condition, "err", err)
	}

	ranked, err := e.searcher.Search(ctx, analysis.Condition, analysis.SearchQuery())
	if err != nil {
		e.logger.Warn("search degraded to empty results", "query", query, "err", err)
		ranked = nil
	}

	scored := e.scorer.Score(ranked)
	return &core.EvidenceBundle{
		RankedResults: ranked,
		Citations:     scored.Citations,
		Confidence:    scored.Confidence,
	}, nil
}
