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


package core

import (
	"fmt"
	"time"
)

// ValidateEvidence validates an Evidence record according to domain rules.
//
// Validation rules:
//   - Topic, Title, URL, and SourceName must not be empty
//   - SourceType must be one of the defined values
//   - RetrievedAt must not be in the future
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the embedding stage runs)
//   - Id (recomputed from URL at upsert)
func ValidateEvidence(ev *Evidence) error {
	if ev == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidEvidence)
	}

	if ev.Topic == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, ErrEmptyTopic)
	}

	if ev.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, ErrEmptyTitle)
	}

	if ev.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, ErrEmptyURL)
	}

	if ev.SourceName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, ErrEmptySourceName)
	}

	if err := ValidateSourceType(ev.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, err)
	}

	if !ev.RetrievedAt.IsZero() && !IsValidTimestamp(ev.RetrievedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidEvidence, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSourceType validates that a SourceType has a valid value.
func ValidateSourceType(source SourceType) error {
	switch source {
	case SourceJournal, SourceHealthSite, SourceCommunity, SourceCurated:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidSourceType, source)
	}
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
