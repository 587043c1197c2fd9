package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/medcite/core"
	"github.com/poiesic/medcite/storage"
)

// EvidenceRepository implements storage.EvidenceRepository for BadgerDB.
type EvidenceRepository struct {
	backend *Backend
}

var _ storage.EvidenceRepository = (*EvidenceRepository)(nil)

// NewEvidenceRepository creates a new EvidenceRepository.
func NewEvidenceRepository(backend *Backend) (*EvidenceRepository, error) {
	return &EvidenceRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *EvidenceRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *EvidenceRepository) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SemanticMatch, error) {
	return r.backend.FindSimilar(ctx, vector, limit)
}

// WithTransaction delegates to the backend.
func (r *EvidenceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertEvidence stores one or more evidence records. IDs are derived from
// the URL, so writing a URL that already exists replaces the earlier record
// and its index entries within the same transaction.
func (r *EvidenceRepository) UpsertEvidence(ctx context.Context, records ...*core.Evidence) ([]*core.Evidence, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateEvidence(record); err != nil {
				return err
			}

			record.Id = core.IDFromURL(record.URL)
			if record.RetrievedAt.IsZero() {
				record.RetrievedAt = time.Now().UTC()
			}

			key := makeEvidenceKey(record.Id)

			// Read the old record to clean up stale index entries
			old, err := r.readEvidence(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				if err := r.deleteIndexEntries(tx, old); err != nil {
					return err
				}
			}

			value := storage.MarshalEvidence(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			topicKey := makeTopicKey(record.Topic, record.Id)
			if err := tx.Set(topicKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}

			dateKey := makeDateKey(record.RetrievedAt, record.Id)
			if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// DeleteEvidence removes evidence records by their IDs.
func (r *EvidenceRepository) DeleteEvidence(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEvidenceKey(id)

			// Read record to get metadata for index cleanup
			record, err := r.readEvidence(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := r.deleteIndexEntries(tx, record); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEvidence retrieves a single evidence record by ID.
func (r *EvidenceRepository) GetEvidence(ctx context.Context, id core.ID) (*core.Evidence, error) {
	var result *core.Evidence
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEvidenceKey(id)
		var err error
		result, err = r.readEvidence(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetEvidenceByURL retrieves the record stored under the given URL. The ID is
// content-derived, so this is a direct key lookup.
func (r *EvidenceRepository) GetEvidenceByURL(ctx context.Context, url string) (*core.Evidence, error) {
	return r.GetEvidence(ctx, core.IDFromURL(url))
}

// GetEvidenceByTopic retrieves all records whose topic matches exactly,
// ordered by ID.
func (r *EvidenceRepository) GetEvidenceByTopic(ctx context.Context, topic string) ([]*core.Evidence, error) {
	var results []*core.Evidence
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialTopicKey(topic)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = startKey
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readEvidence(tx, makeEvidenceKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// SearchSubstring retrieves up to limit records whose topic, title, or body
// contains the query as a case-insensitive substring. This scans the corpus;
// it is intended for structured lookup over a modest evidence store, not for
// full-text search at scale.
func (r *EvidenceRepository) SearchSubstring(ctx context.Context, query string, limit int) ([]*core.Evidence, error) {
	if query == "" {
		return nil, storage.ErrInvalidQuery
	}
	needle := strings.ToLower(query)

	var results []*core.Evidence
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(evidencePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}

			var record *core.Evidence
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalEvidence(val)
				return err
			}); err != nil {
				return err
			}
			if record == nil {
				continue
			}

			if strings.Contains(strings.ToLower(record.Topic), needle) ||
				strings.Contains(strings.ToLower(record.Title), needle) ||
				strings.Contains(strings.ToLower(record.Body), needle) {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetEvidenceByDateRange retrieves records with start <= RetrievedAt < end,
// ordered by retrieval time.
func (r *EvidenceRepository) GetEvidenceByDateRange(ctx context.Context, start, end time.Time) ([]*core.Evidence, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Evidence
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDateKey(start)
		endKey := makePartialDateKey(end)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(evidenceDatePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if string(key) >= string(endKey) {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readEvidence(tx, makeEvidenceKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountEvidence returns the number of records in the corpus.
func (r *EvidenceRepository) CountEvidence(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(evidencePrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// readEvidence reads an evidence record from the transaction.
func (r *EvidenceRepository) readEvidence(tx *badger.Txn, key []byte) (*core.Evidence, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.Evidence
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalEvidence(val)
		return unmarshalErr
	})
	return record, err
}

// deleteIndexEntries removes the topic and date index entries for a record.
func (r *EvidenceRepository) deleteIndexEntries(tx *badger.Txn, record *core.Evidence) error {
	if err := tx.Delete(makeTopicKey(record.Topic, record.Id)); err != nil {
		return err
	}
	return tx.Delete(makeDateKey(record.RetrievedAt, record.Id))
}
