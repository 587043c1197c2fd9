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


package storage

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/poiesic/medcite/core"
)

// Composite serializers for Evidence fields.
var (
	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	facetsMUS      = ord.NewMapSer[string, []string](ord.String, stringSliceMUS)
	vectorMUS      = ord.NewSliceSer[float32](raw.Float32)
)

// idSer serializes core.ID as a varint-encoded uint64.
type idSer struct{}

// IDMUS is the mus serializer for core.ID.
var IDMUS = idSer{}

var _ mus.Serializer[core.ID] = IDMUS

func (idSer) Marshal(id core.ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (id core.ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(v), n, err
}

func (idSer) Size(id core.ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// evidenceSer serializes core.Evidence records. Timestamps are stored as
// microsecond Unix values; the field order is part of the storage format and
// must not change without a corpus migration.
type evidenceSer struct{}

// EvidenceMUS is the mus serializer for core.Evidence.
var EvidenceMUS = evidenceSer{}

var _ mus.Serializer[core.Evidence] = EvidenceMUS

func (evidenceSer) Marshal(ev core.Evidence, bs []byte) (n int) {
	n = IDMUS.Marshal(ev.Id, bs)
	n += ord.String.Marshal(ev.Topic, bs[n:])
	n += ord.String.Marshal(ev.Title, bs[n:])
	n += ord.String.Marshal(ev.Body, bs[n:])
	n += facetsMUS.Marshal(ev.Facets, bs[n:])
	n += varint.Int.Marshal(int(ev.Source), bs[n:])
	n += ord.String.Marshal(ev.SourceName, bs[n:])
	n += ord.String.Marshal(ev.URL, bs[n:])
	n += ord.String.Marshal(ev.Year, bs[n:])
	n += varint.Int64.Marshal(ev.RetrievedAt.UnixMicro(), bs[n:])
	n += vectorMUS.Marshal(ev.Vector, bs[n:])
	return n
}

func (evidenceSer) Unmarshal(bs []byte) (ev core.Evidence, n int, err error) {
	var n1 int
	if ev.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if ev.Topic, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	if ev.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	if ev.Body, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	if ev.Facets, n1, err = facetsMUS.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	var source int
	if source, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	ev.Source = core.SourceType(source)
	if ev.SourceName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	if ev.URL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	if ev.Year, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	ev.RetrievedAt = time.UnixMicro(micros).UTC()
	if ev.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return ev, n + n1, err
	}
	n += n1
	return ev, n, nil
}

func (evidenceSer) Size(ev core.Evidence) (size int) {
	size = IDMUS.Size(ev.Id)
	size += ord.String.Size(ev.Topic)
	size += ord.String.Size(ev.Title)
	size += ord.String.Size(ev.Body)
	size += facetsMUS.Size(ev.Facets)
	size += varint.Int.Size(int(ev.Source))
	size += ord.String.Size(ev.SourceName)
	size += ord.String.Size(ev.URL)
	size += ord.String.Size(ev.Year)
	size += varint.Int64.Size(ev.RetrievedAt.UnixMicro())
	size += vectorMUS.Size(ev.Vector)
	return size
}

func (evidenceSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	skippers := []func([]byte) (int, error){
		IDMUS.Skip,
		ord.String.Skip,
		ord.String.Skip,
		ord.String.Skip,
		facetsMUS.Skip,
		varint.Int.Skip,
		ord.String.Skip,
		ord.String.Skip,
		ord.String.Skip,
		varint.Int64.Skip,
		vectorMUS.Skip,
	}
	for _, skip := range skippers {
		if n1, err = skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	return id, err
}

// MarshalEvidence serializes an Evidence record to bytes.
func MarshalEvidence(ev *core.Evidence) []byte {
	buf := make([]byte, EvidenceMUS.Size(*ev))
	EvidenceMUS.Marshal(*ev, buf)
	return buf
}

// UnmarshalEvidence deserializes an Evidence record from bytes.
func UnmarshalEvidence(data []byte) (*core.Evidence, error) {
	ev, _, err := EvidenceMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
