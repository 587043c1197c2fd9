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


package search

import "errors"

var (
	// ErrRepositoryRequired is returned when an evidence repository is not provided.
	ErrRepositoryRequired = errors.New("evidence repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrBothIndexesFailed is returned when neither retrieval mechanism
	// produced results due to errors.
	ErrBothIndexesFailed = errors.New("both structured and semantic lookup failed")

	// ErrInvalidBaseline indicates a structured baseline outside [0,1].
	ErrInvalidBaseline = errors.New("structured baseline must be in [0,1]")

	// ErrInvalidMaxResults indicates a non-positive result cap.
	ErrInvalidMaxResults = errors.New("max results must be positive")
)
