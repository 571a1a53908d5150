package skeptic

import "context"

// Analysis is the result of analyzing one article.
type Analysis struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`

	// Raw is the unparsed model response.
	Raw string `json:"analysis"`

	// Report is Raw parsed with ParseReport.
	Report Report `json:"report"`
}

// Analyzer runs the full fetch, extract, prompt, and parse pipeline for a
// URL.
type Analyzer interface {
	// Analyze returns the analysis of the article at url.
	// Returns EINVALID for a missing or malformed URL, EEXTRACT when the
	// article cannot be fetched or has too little content, and ECONFIG or
	// EMODEL when the language model cannot produce an analysis.
	Analyze(ctx context.Context, url string) (*Analysis, error)
}
