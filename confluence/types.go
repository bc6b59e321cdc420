package confluence

// See https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-users/#api-wiki-rest-api-user-get
type User struct {
	Type        string `json:"type"`
	Username    string `json:"username"`
	UserKey     string `json:"userKey"`
	AccountID   string `json:"accountId"`
	AccountType string `json:"accountType"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// See https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-space/#api-spaces-get. I'm
// embellishing that with the Org/"Confluence instance name" field for convenience.
type Space struct {
	ID     string `json:"id,omitempty"`
	Key    string `json:"key,omitempty"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
	Org    string `json:"-"`
}

// See https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-page/#api-pages-get
type Page struct {
	ID         string `json:"id,omitempty"`
	Status     string `json:"status,omitempty"` // current, archived, deleted, trashed
	Title      string `json:"title,omitempty"`
	SpaceID    string `json:"spaceId,omitempty"`
	ParentID   string `json:"parentId,omitempty"`
	ParentType string `json:"parentType,omitempty"`
	Position   int    `json:"position,omitempty"`
	AuthorID   string `json:"authorId,omitempty"`
	OwnerID    string `json:"ownerId,omitempty"`

	CreatedAt string   `json:"createdAt,omitempty"`
	Version   *Version `json:"version,omitempty"`

	Body Body `json:"body"`

	Links struct {
		WebUI  string `json:"webui"`
		EditUI string `json:"editui"`
		TinyUI string `json:"tinyui"`
	} `json:"_links"`
}

// Version defines the content version number
// the version number is used for updating content
type Version struct {
	CreatedAt string `json:"createdAt,omitempty"`
	Message   string `json:"message,omitempty"`
	Number    int    `json:"number"`
	MinorEdit bool   `json:"minorEdit"`
	AuthorID  string `json:"authorId,omitempty"`
}

// Body holds the storage information
type Body struct {
	Storage        *Storage `json:"storage,omitempty"`
	AtlasDocFormat *Storage `json:"atlas_doc_format,omitempty"`
	View           *Storage `json:"view,omitempty"`
}

// Storage defines the storage information
type Storage struct {
	Representation string `json:"representation"`
	Value          string `json:"value"`
}

const (
	StatusCurrent         = "current"
	RepresentationStorage = "storage"
)

// CreatePageRequest is the payload for
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-page/#api-pages-post
type CreatePageRequest struct {
	SpaceID  string  `json:"spaceId"`
	Status   string  `json:"status,omitempty"`
	Title    string  `json:"title"`
	ParentID string  `json:"parentId,omitempty"`
	Body     Storage `json:"body"`
}

// UpdatePageRequest is the payload for
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-page/#api-pages-id-put
type UpdatePageRequest struct {
	ID      string        `json:"id"`
	Status  string        `json:"status"`
	Title   string        `json:"title"`
	Body    Storage       `json:"body"`
	Version VersionUpdate `json:"version"`
}

// VersionUpdate must carry the current version number + 1.
type VersionUpdate struct {
	Number  int    `json:"number"`
	Message string `json:"message,omitempty"`
}

// ContentProperty is a key/value pair stored against a page, see
// https://developer.atlassian.com/cloud/confluence/rest/v2/api-group-content-properties/#api-pages-page-id-properties-post
type ContentProperty struct {
	ID    string `json:"id,omitempty"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Property key and value that make a published page span the whole browser window.
const (
	AppearancePublishedKey = "content-appearance-published"
	AppearanceFullWidth    = "full-width"
)
