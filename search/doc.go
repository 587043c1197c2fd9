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


// Package search provides hybrid retrieval over the evidence corpus.
//
// The Searcher type combines two lookups run concurrently:
//   - Structured: exact topic match with substring fallback over stored fields
//   - Semantic: nearest-neighbor search over embedding vectors
//
// Results are merged by URL, with records found by both mechanisms keeping
// their higher relevance. One index failing degrades that side to empty
// results rather than failing the search.
package search
