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


package reembed

import (
	"context"
	"time"

	"github.com/poiesic/medcite/core"
	"github.com/poiesic/medcite/storage"
)

const (
	// DefaultBatchSize is the default number of records per batch
	DefaultBatchSize = 100
)

// RecordIterator walks the evidence corpus in batches, ordered by
// retrieval time.
type RecordIterator struct {
	repository storage.EvidenceRepository
	batchSize  int
}

// NewRecordIterator creates a new record iterator.
// batchSize: number of records per batch (must be > 0)
func NewRecordIterator(repository storage.EvidenceRepository, batchSize int) *RecordIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &RecordIterator{
		repository: repository,
		batchSize:  batchSize,
	}
}

// ForEach iterates over all evidence records, calling fn for each batch.
// Iteration stops on the first error from fn. Context cancellation is
// checked between batches.
func (it *RecordIterator) ForEach(ctx context.Context, fn func([]*core.Evidence) error) error {
	// A date range wide enough to cover every RetrievedAt value.
	startTime := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	endTime := time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	records, err := it.repository.GetEvidenceByDateRange(ctx, startTime, endTime)
	if err != nil {
		return err
	}

	for i := 0; i < len(records); i += it.batchSize {
		end := i + it.batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := fn(records[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
