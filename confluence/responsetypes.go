package confluence

// AllSpaces response type
type AllSpaces struct {
	Results []Space `json:"results"`

	Links struct {
		// Contains the relative URL for the next set of results, using a cursor query
		// parameter. This property will not be present if there is no additional data available.
		Next string `json:"next"`
	} `json:"_links"`
}

type MultiPageResponse struct {
	Results []Page `json:"results"`

	Links struct {
		// Contains the relative URL for the next set of results, using a cursor query
		// parameter. This property will not be present if there is no additional data available.
		Next string `json:"next"`
	} `json:"_links"`
}

// PageLookupOutcome says how much we learnt about a page when looking it up by title.
type PageLookupOutcome int

const (
	PageNotFound PageLookupOutcome = iota
	// The page exists and its storage body came back with it.
	PageFoundWithContent
	// The page exists but the server didn't hand us its body, so we can't tell whether it differs.
	PageFoundWithoutContent
)

func (o PageLookupOutcome) String() string {
	switch o {
	case PageFoundWithContent:
		return "found"
	case PageFoundWithoutContent:
		return "found (no content)"
	default:
		return "not found"
	}
}

// PageLookup is the result of FindPageByTitle.  Page is nil iff Outcome is PageNotFound.
type PageLookup struct {
	Outcome PageLookupOutcome
	Page    *Page
}

// Found reports whether a page with the requested title exists.
func (l PageLookup) Found() bool {
	return l.Outcome != PageNotFound && l.Page != nil
}

// Version returns the current version number of the found page, or 0.
func (l PageLookup) Version() int {
	if !l.Found() || l.Page.Version == nil {
		return 0
	}
	return l.Page.Version.Number
}

// StoredContent returns the page's storage-format body, and whether we have it at all.
func (l PageLookup) StoredContent() (string, bool) {
	if l.Outcome != PageFoundWithContent {
		return "", false
	}
	return l.Page.Body.Storage.Value, true
}
