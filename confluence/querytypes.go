package confluence

// SpacesQuery is the subset of query parameters we use for:
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-space/#api-spaces-get
type SpacesQuery struct {
	Keys []string `url:"keys,omitempty,comma"` // only these space keys
	Type string   `url:"type,omitempty"`       // "global" or "personal", empty for both

	// Opaque, copied out of the previous response's _links.next.
	Cursor string `url:"cursor,omitempty"`
	Limit  int    `url:"limit,omitempty"` // default 25, range 1-250
}

// GetPagesQuery is the subset of query parameters we use for:
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-page/#api-pages-get
type GetPagesQuery struct {
	SpaceID []int    `url:"space-id,omitempty,comma"` // maximum 100 per query
	Status  []string `url:"status,omitempty,comma"`   // current, archived, deleted, trashed
	Title   string   `url:"title,omitempty"`          // exact match

	// Which representation to inline under body.  Without it, pages come back bodiless.
	BodyFormat string `url:"body-format,omitempty"`

	Cursor string `url:"cursor,omitempty"`
	Limit  int    `url:"limit,omitempty"`
}

// GetPageByIDQuery is for:
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-page/#api-pages-id-get
type GetPageByIDQuery struct {
	ID int `url:"-"` // goes in the path

	BodyFormat string `url:"body-format,omitempty"` // storage, atlas_doc_format, view, ...
}

// FindPageQuery narrows a page lookup to one title, optionally inside one space.
type FindPageQuery struct {
	SpaceID string
	Title   string
}
