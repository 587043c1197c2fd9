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

// Config holds the confidence scoring and citation formatting knobs.
// The defaults are tuned so that a single mediocre source lands well below
// the confidence of several independent authoritative ones.
type Config struct {
	// MaxCitations caps how many citations a bundle carries.
	MaxCitations int

	// Authorities lists source names whose presence grants the authority
	// bonus. Matching is exact on the stored source name.
	Authorities []string

	// AuthorityBonus is added once per bundle when any ranked source is an
	// authority, regardless of how many authorities matched.
	AuthorityBonus float32

	// DiversityWeight is the confidence added per distinct source name.
	DiversityWeight float32

	// DiversityCap bounds the total diversity contribution.
	DiversityCap float32

	// LengthWeight is the confidence added per 1000 characters of evidence
	// text backing the answer.
	LengthWeight float32

	// LengthCap bounds the total length contribution.
	LengthCap float32

	// EmptyConfidence is the floor confidence reported when no evidence was
	// found at all.
	EmptyConfidence float32
}

// DefaultConfig returns the scoring configuration used when none is provided.
func DefaultConfig() Config {
	return Config{
		MaxCitations:    3,
		Authorities:     []string{"Mayo Clinic", "WebMD", "JAMA", "NEJM", "BMJ"},
		AuthorityBonus:  0.2,
		DiversityWeight: 0.1,
		DiversityCap:    0.3,
		LengthWeight:    0.1,
		LengthCap:       0.2,
		EmptyConfidence: 0.3,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.MaxCitations < 1 {
		return ErrInvalidMaxCitations
	}
	for _, v := range []float32{c.AuthorityBonus, c.DiversityWeight, c.DiversityCap, c.LengthWeight, c.LengthCap, c.EmptyConfidence} {
		if v < 0 || v > 1 {
			return ErrInvalidWeight
		}
	}
	return nil
}
