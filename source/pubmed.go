package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/poiesic/medcite/core"
)

const (
	pubmedESearchURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedESummaryURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
	pubmedArticleBase = "https://pubmed.ncbi.nlm.nih.gov"

	defaultMaxArticles = 5
)

// PubMedFetcher retrieves journal article metadata from the NCBI E-utilities.
// It runs an ESearch for the condition, then an ESummary for the matched
// article IDs.
type PubMedFetcher struct {
	client      *Client
	maxArticles int
	searchURL   string
	summaryURL  string
}

// PubMedOption configures a PubMedFetcher.
type PubMedOption func(*PubMedFetcher)

// WithMaxArticles caps the number of articles fetched per condition.
func WithMaxArticles(n int) PubMedOption {
	return func(f *PubMedFetcher) {
		if n > 0 {
			f.maxArticles = n
		}
	}
}

// WithEUtilsEndpoints overrides the E-utilities endpoints, for tests and
// local mirrors.
func WithEUtilsEndpoints(searchURL, summaryURL string) PubMedOption {
	return func(f *PubMedFetcher) {
		f.searchURL = searchURL
		f.summaryURL = summaryURL
	}
}

// NewPubMedFetcher creates a fetcher backed by the given client.
func NewPubMedFetcher(client *Client, opts ...PubMedOption) *PubMedFetcher {
	f := &PubMedFetcher{
		client:      client,
		maxArticles: defaultMaxArticles,
		searchURL:   pubmedESearchURL,
		summaryURL:  pubmedESummaryURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name identifies the source in logs and failure reports.
func (f *PubMedFetcher) Name() string {
	return "pubmed"
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type esummaryResponse struct {
	Result map[string]any `json:"result"`
}

// Fetch searches PubMed for recent articles about the condition and returns
// their metadata as raw records.
func (f *PubMedFetcher) Fetch(ctx context.Context, condition string) ([]*core.RawRecord, error) {
	ids, err := f.search(ctx, condition)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return f.summaries(ctx, condition, ids)
}

func (f *PubMedFetcher) search(ctx context.Context, condition string) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", condition)
	params.Set("retmode", "json")
	params.Set("retmax", fmt.Sprintf("%d", f.maxArticles))
	params.Set("sort", "relevance")

	var resp esearchResponse
	if err := f.client.GetJSON(ctx, f.searchURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.ESearchResult.IDList, nil
}

func (f *PubMedFetcher) summaries(ctx context.Context, condition string, ids []string) ([]*core.RawRecord, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")

	var resp esummaryResponse
	if err := f.client.GetJSON(ctx, f.summaryURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	var records []*core.RawRecord
	for _, id := range ids {
		doc, ok := resp.Result[id].(map[string]any)
		if !ok {
			continue
		}

		title := stringField(doc, "title")
		if title == "" {
			continue
		}

		journal := stringField(doc, "fulljournalname")
		if journal == "" {
			journal = stringField(doc, "source")
		}
		if journal == "" {
			journal = "PubMed"
		}

		records = append(records, &core.RawRecord{
			Source:     core.SourceJournal,
			SourceName: journal,
			Topic:      condition,
			Title:      title,
			URL:        fmt.Sprintf("%s/%s/", pubmedArticleBase, id),
			Year:       pubYear(stringField(doc, "pubdate")),
			Extra: map[string]string{
				"pmid": id,
			},
		})
	}
	return records, nil
}

// stringField reads a string value from an ESummary document, tolerating
// missing or differently-typed fields.
func stringField(doc map[string]any, key string) string {
	v, ok := doc[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// pubYear extracts the year from a PubMed pubdate like "2024 Mar 15".
func pubYear(pubdate string) string {
	fields := strings.Fields(pubdate)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
