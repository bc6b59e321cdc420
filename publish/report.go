package publish

import "fmt"

type Action int

const (
	Created Action = iota
	Updated
	Unchanged
	Failed
	// Dry run: we know what we would have done, but didn't.
	Skipped
)

func (a Action) String() string {
	switch a {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Link is what we report for every page we wrote.
type Link struct {
	Title string
	URL   string
}

func (l Link) String() string {
	return fmt.Sprintf("%s: %s", l.Title, l.URL)
}

// Result is the outcome of syncing one document.
type Result struct {
	Path   string
	Title  string
	Action Action

	PageID  string
	Version int

	// Only when Action is Failed.  StatusCode is 0 if we never got a response.
	StatusCode int
	Err        error

	// Only when Action is Created or Updated.
	Link *Link
}

type Report struct {
	Results []Result
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}

// Links lists a link for every page created or updated, in the order they were written.
func (r *Report) Links() []Link {
	links := []Link{}
	for _, res := range r.Results {
		if res.Link != nil {
			links = append(links, *res.Link)
		}
	}
	return links
}

func (r *Report) Count(a Action) int {
	n := 0
	for _, res := range r.Results {
		if res.Action == a {
			n++
		}
	}
	return n
}
