package confluence

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

func (api *API) ListAllSpaces(ctx context.Context, orgName string, includePersonal bool) (map[string]Space, error) {
	query := SpacesQuery{
		Limit: 10,
	}

	if !includePersonal {
		// Logic here is a bit confusing.  The `type` parameter may be "global", "personal", or
		// nothing at all for both.  "global" will return spaces like DRE, CORE, etc., while
		// "personal" returns each user's space.  Leaving it empty gives us everything, so we only
		// set this if we _do not_ intend to include personal spaces in our query.
		query.Type = "global"
	}

	return api.listSpaces(ctx, orgName, query)
}

// SpaceByKey resolves a human-readable space key (e.g. DOCS) to the space, which carries the
// numeric ID the v2 API wants everywhere.
func (api *API) SpaceByKey(ctx context.Context, orgName string, key string) (Space, error) {
	if key == "" {
		return Space{}, fmt.Errorf("confluence: please provide a space key")
	}

	spaces, err := api.listSpaces(ctx, orgName, SpacesQuery{Keys: []string{key}})
	if err != nil {
		return Space{}, fmt.Errorf("confluence: couldn't look up space %s: %w", key, err)
	}

	space, ok := spaces[key]
	if !ok {
		return Space{}, fmt.Errorf("confluence: space ID for key %s not found", key)
	}

	return space, nil
}

func (api *API) listSpaces(ctx context.Context, orgName string, query SpacesQuery) (map[string]Space, error) {
	spaces := map[string]Space{}

	for {
		allspaces, err := api.getSpaces(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't list spaces: %w", err)
		}

		for _, space := range allspaces.Results {
			space.Org = orgName
			spaces[space.Key] = space
		}

		if allspaces.Links.Next == "" {
			break
		}

		cursor, err := cursorFromNext(allspaces.Links.Next)
		if err != nil {
			return nil, err
		}
		query.Cursor = cursor
	}

	return spaces, nil
}

// FindPageByTitle looks for a current page with exactly this title.  If Confluence returns several,
// the first one wins.  The storage body is requested inline, so callers can skip no-op updates.
func (api *API) FindPageByTitle(ctx context.Context, q FindPageQuery) (PageLookup, error) {
	if q.Title == "" {
		return PageLookup{}, fmt.Errorf("confluence: please provide a title to look up")
	}

	query := GetPagesQuery{
		Title:      q.Title,
		Status:     []string{StatusCurrent},
		BodyFormat: RepresentationStorage,
	}

	if q.SpaceID != "" {
		id, err := strconv.Atoi(q.SpaceID)
		if err != nil {
			return PageLookup{}, fmt.Errorf("confluence: space id was not an int: %w", err)
		}
		query.SpaceID = []int{id}
	}

	pages, err := api.GetPages(ctx, query)
	if err != nil {
		return PageLookup{}, fmt.Errorf("confluence: couldn't look up page '%s': %w", q.Title, err)
	}

	if len(pages.Results) == 0 {
		return PageLookup{Outcome: PageNotFound}, nil
	}

	page := pages.Results[0]
	if page.Body.Storage == nil {
		return PageLookup{Outcome: PageFoundWithoutContent, Page: &page}, nil
	}

	return PageLookup{Outcome: PageFoundWithContent, Page: &page}, nil
}

func cursorFromNext(next string) (string, error) {
	q, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("confluence: couldn't parse _links.next: %w", err)
	}

	cursor := q.Query().Get("cursor")
	if cursor == "" {
		return "", fmt.Errorf("confluence: expected parameter 'cursor' was empty")
	}

	return cursor, nil
}
