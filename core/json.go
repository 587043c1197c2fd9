package core

import "encoding/json"

// rankedResultWire is the serialized shape of a RankedResult: the evidence
// fields callers need for display are flattened next to the ranking fields.
type rankedResultWire struct {
	URL        string              `json:"url"`
	Title      string              `json:"title"`
	SourceName string              `json:"sourceName"`
	Facets     map[string][]string `json:"facets,omitempty"`
	Relevance  float32             `json:"relevance"`
	Origin     Origin              `json:"origin"`
}

// MarshalJSON flattens the embedded evidence into the wire shape.
func (r *RankedResult) MarshalJSON() ([]byte, error) {
	w := rankedResultWire{
		Relevance: r.Relevance,
		Origin:    r.Origin,
	}
	if r.Evidence != nil {
		w.URL = r.Evidence.URL
		w.Title = r.Evidence.Title
		w.SourceName = r.Evidence.SourceName
		w.Facets = r.Evidence.Facets
	}
	return json.Marshal(w)
}

// UnmarshalJSON restores the wire shape into a RankedResult with a partial
// Evidence record (only the serialized fields are populated).
func (r *RankedResult) UnmarshalJSON(data []byte) error {
	var w rankedResultWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.Relevance = w.Relevance
	r.Origin = w.Origin
	r.Evidence = &Evidence{
		Id:         IDFromURL(w.URL),
		Title:      w.Title,
		SourceName: w.SourceName,
		URL:        w.URL,
		Facets:     w.Facets,
	}
	return nil
}
