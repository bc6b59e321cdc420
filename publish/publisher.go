// Package publish syncs local Markdown documents into Confluence as child pages of one parent.
package publish

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/toothbrush/confluence-sync/confluence"
	"github.com/toothbrush/confluence-sync/markdown"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

// PageService is the slice of the Confluence API a sync needs.  *confluence.API implements it.
type PageService interface {
	SpaceByKey(ctx context.Context, orgName string, key string) (confluence.Space, error)
	FindPageByTitle(ctx context.Context, q confluence.FindPageQuery) (confluence.PageLookup, error)
	CreatePage(ctx context.Context, req confluence.CreatePageRequest) (*confluence.Page, error)
	UpdatePage(ctx context.Context, req confluence.UpdatePageRequest) (*confluence.Page, error)
	CreatePageProperty(ctx context.Context, pageID string, prop confluence.ContentProperty) (*confluence.ContentProperty, error)
	WebURL(webUI string) string
}

var _ PageService = (*confluence.API)(nil)

type Publisher struct {
	API    PageService
	Config Config
	Logger *log.Logger

	// If set, a progress bar is drawn here while pages are synced.
	Progress io.Writer

	spaceID string
}

func NewPublisher(api PageService, config Config, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Publisher{
		API:    api,
		Config: config,
		Logger: logger,
	}
}

// Run is the whole pipeline: resolve the space, find the documents, render them, then create or
// update one page per document.  Errors returned from here are fatal; a document that fails to
// sync only shows up as a Failed result in the report.
func (p *Publisher) Run(ctx context.Context) (*Report, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}

	if err := p.ResolveSpace(ctx); err != nil {
		return nil, err
	}

	files, err := p.inputFiles()
	if err != nil {
		return nil, err
	}
	p.Logger.Printf("Found %d Markdown files to sync.\n", len(files))

	docs, err := p.loadDocuments(ctx, files)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	bar := newProgress(p.Progress, len(docs))
	defer bar.done()

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("publish: interrupted: %w", err)
		}
		report.add(p.SyncDocument(ctx, doc))
		bar.increment()
	}

	return report, nil
}

// ResolveSpace makes sure we know the numeric space ID, looking it up by key if we have to.
func (p *Publisher) ResolveSpace(ctx context.Context) error {
	if p.Config.SpaceID != "" {
		p.spaceID = p.Config.SpaceID
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.Config.timeout())
	defer cancel()

	space, err := p.API.SpaceByKey(ctx, p.Config.Instance, p.Config.SpaceKey)
	if err != nil {
		return fmt.Errorf("publish: space ID for key %s not found: %w", p.Config.SpaceKey, err)
	}
	if space.ID == "" {
		return fmt.Errorf("publish: space %s came back without an ID", p.Config.SpaceKey)
	}

	p.spaceID = space.ID
	return nil
}

func (p *Publisher) inputFiles() ([]string, error) {
	mode, err := p.Config.Mode()
	if err != nil {
		return nil, err
	}

	if mode == ModeFile {
		path, err := p.Config.resolvePath(p.Config.InputFile)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	if len(p.Config.ExcludeFiles) > 0 {
		excluded := map[string]bool{}
		for _, name := range p.Config.ExcludeFiles {
			excluded[name] = true
		}
		names := maps.Keys(excluded)
		sort.Strings(names)
		p.Logger.Printf("Excluding: %s\n", strings.Join(names, ", "))
	}

	files := []string{}
	for _, dir := range p.Config.InputDirectories {
		path, err := p.Config.resolvePath(dir)
		if err != nil {
			return nil, err
		}

		found, err := ListMarkdownFiles(path, p.Config.ExcludeFiles)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	return files, nil
}

// loadDocuments reads and renders all files.  That's pure local work, so it happens in parallel;
// the result keeps the order of files.
func (p *Publisher) loadDocuments(ctx context.Context, files []string) ([]*markdown.Document, error) {
	docs := make([]*markdown.Document, len(files))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(p.Config.workers())

	for i, file := range files {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := markdown.Load(file)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("publish: couldn't load documents: %w", err)
	}

	return docs, nil
}

// SyncDocument looks doc up by title and creates, updates or leaves alone the matching page.
func (p *Publisher) SyncDocument(ctx context.Context, doc *markdown.Document) Result {
	lookupCtx, cancel := context.WithTimeout(ctx, p.Config.timeout())
	lookup, err := p.API.FindPageByTitle(lookupCtx, confluence.FindPageQuery{
		SpaceID: p.spaceID,
		Title:   doc.Title,
	})
	cancel()
	if err != nil {
		return p.failed(doc, err)
	}

	if !lookup.Found() {
		return p.create(ctx, doc)
	}
	return p.update(ctx, doc, lookup)
}
