package models

// RedirectRecord is one row of the lookup store, normalized to a single
// semantic target field regardless of how the deployment names its columns.
type RedirectRecord struct {
	Slug      string
	TargetURL string
}

// ResultKind tells whether a resolution found a real mapping.
type ResultKind int

const (
	ResultFallback ResultKind = iota
	ResultRedirect
)

func (k ResultKind) String() string {
	switch k {
	case ResultRedirect:
		return "redirect"
	case ResultFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// RedirectResult is what the resolver hands back to the HTTP layer.
type RedirectResult struct {
	Kind       ResultKind
	StatusCode int
	Location   string
}

// ResolvePreviewResponse defines the JSON output of the preview endpoint.
type ResolvePreviewResponse struct {
	Path       string        `json:"path"`
	Matched    bool          `json:"matched"`
	StatusCode int           `json:"status_code"`
	Location   SafeURLString `json:"location"`
}
