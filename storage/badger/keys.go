package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/medcite/core"
)

// Key prefixes for different data types
const (
	evidencePrefix      = "evirec"
	evidenceTopicPrefix = "evitop"
	evidenceDatePrefix  = "evidat"
)

// makeEvidenceKey generates a key for an evidence record by ID.
func makeEvidenceKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", evidencePrefix, id))
}

// makeTopicKey generates a composite key for the topic index.
// Format: prefix:topic\x00id
// The NUL byte terminates the topic so that "heart" does not match keys for
// "heart disease"; topics themselves never contain NUL after normalization.
func makeTopicKey(topic string, id core.ID) []byte {
	prefix := evidenceTopicPrefix + ":"
	totalSize := len(prefix) + len(topic) + 1 + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	offset += copy(buf[offset:], []byte(topic))
	buf[offset] = 0
	offset++
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialTopicKey generates a partial key for topic queries.
// Format: prefix:topic\x00
func makePartialTopicKey(topic string) []byte {
	prefix := evidenceTopicPrefix + ":"
	totalSize := len(prefix) + len(topic) + 1
	buf := make([]byte, totalSize)
	offset := copy(buf, []byte(prefix))
	offset += copy(buf[offset:], []byte(topic))
	buf[offset] = 0
	return buf
}

// makeDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := evidenceDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialDateKey(timestamp time.Time) []byte {
	prefix := evidenceDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
