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


// Package storage defines the persistence interfaces for the evidence corpus
// and the binary serialization of stored records.
//
// The package follows the repository pattern: callers depend on the
// EvidenceRepository interface, and concrete backends (see the badger
// subpackage) implement it. Records are serialized with the mus binary
// format; the field order in serialization.go is the on-disk schema.
package storage
