package publish

import (
	"context"
	"fmt"

	"github.com/toothbrush/confluence-sync/confluence"
	"github.com/toothbrush/confluence-sync/markdown"
)

func (p *Publisher) create(ctx context.Context, doc *markdown.Document) Result {
	if p.Config.DryRun {
		p.Logger.Printf("%s: would create page under parent %s (dry run).\n", doc.Title, p.Config.ParentPageID)
		return Result{Path: doc.Path, Title: doc.Title, Action: Skipped}
	}

	callCtx, cancel := context.WithTimeout(ctx, p.Config.timeout())
	defer cancel()

	page, err := p.API.CreatePage(callCtx, confluence.CreatePageRequest{
		SpaceID:  p.spaceID,
		Status:   confluence.StatusCurrent,
		Title:    doc.Title,
		ParentID: p.Config.ParentPageID,
		Body: confluence.Storage{
			Representation: confluence.RepresentationStorage,
			Value:          doc.HTML,
		},
	})
	if err != nil {
		return p.failed(doc, err)
	}

	if p.Config.FullWidth {
		p.markFullWidth(ctx, doc, page.ID)
	}

	p.Logger.Printf("%s: Content upload successful.\n", doc.Title)

	return Result{
		Path:    doc.Path,
		Title:   doc.Title,
		Action:  Created,
		PageID:  page.ID,
		Version: 1,
		Link:    &Link{Title: doc.Title, URL: p.API.WebURL(page.Links.WebUI)},
	}
}

func (p *Publisher) update(ctx context.Context, doc *markdown.Document, lookup confluence.PageLookup) Result {
	existing := lookup.Page
	if existing.Version == nil {
		return p.failed(doc, fmt.Errorf("%w: page %s", ErrNoVersion, existing.ID))
	}

	// Without the stored body we can't prove it's the same, so we write.
	if stored, ok := lookup.StoredContent(); ok && stored == doc.HTML {
		p.Logger.Printf("%s: Identical content, no update required.\n", doc.Title)
		return Result{
			Path:    doc.Path,
			Title:   doc.Title,
			Action:  Unchanged,
			PageID:  existing.ID,
			Version: lookup.Version(),
		}
	}

	newVersion := lookup.Version() + 1

	if p.Config.DryRun {
		p.Logger.Printf("%s: would update page %s to version %d (dry run).\n", doc.Title, existing.ID, newVersion)
		return Result{Path: doc.Path, Title: doc.Title, Action: Skipped, PageID: existing.ID, Version: lookup.Version()}
	}

	ctx, cancel := context.WithTimeout(ctx, p.Config.timeout())
	defer cancel()

	page, err := p.API.UpdatePage(ctx, confluence.UpdatePageRequest{
		ID:     existing.ID,
		Status: confluence.StatusCurrent,
		Title:  doc.Title,
		Body: confluence.Storage{
			Representation: confluence.RepresentationStorage,
			Value:          doc.HTML,
		},
		Version: confluence.VersionUpdate{
			Number:  newVersion,
			Message: p.Config.VersionMessage,
		},
	})
	if err != nil {
		return p.failed(doc, err)
	}

	p.Logger.Printf("%s: Success. New version: %d\n", doc.Title, newVersion)

	webUI := page.Links.WebUI
	if webUI == "" {
		webUI = existing.Links.WebUI
	}

	return Result{
		Path:    doc.Path,
		Title:   doc.Title,
		Action:  Updated,
		PageID:  existing.ID,
		Version: newVersion,
		Link:    &Link{Title: doc.Title, URL: p.API.WebURL(webUI)},
	}
}

// markFullWidth is fire-and-forget: the page exists either way, so a failure here is only logged.
func (p *Publisher) markFullWidth(ctx context.Context, doc *markdown.Document, pageID string) {
	ctx, cancel := context.WithTimeout(ctx, p.Config.timeout())
	defer cancel()

	_, err := p.API.CreatePageProperty(ctx, pageID, confluence.ContentProperty{
		Key:   confluence.AppearancePublishedKey,
		Value: confluence.AppearanceFullWidth,
	})
	if err != nil {
		p.Logger.Printf("%s: couldn't set full width, ignoring: %v\n", doc.Title, err)
	}
}

func (p *Publisher) failed(doc *markdown.Document, err error) Result {
	code, ok := confluence.StatusCode(err)
	if ok {
		p.Logger.Printf("%s: Failed. HTTP status code: %d\n", doc.Title, code)
	} else {
		p.Logger.Printf("%s: Failed. %v\n", doc.Title, err)
	}

	return Result{
		Path:       doc.Path,
		Title:      doc.Title,
		Action:     Failed,
		StatusCode: code,
		Err:        err,
	}
}
