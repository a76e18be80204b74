package service

import (
	"context"
	"errors"
	"fmt"

	"catalogfeed/scraper/internal/client"
	"catalogfeed/scraper/internal/domain"
	"catalogfeed/scraper/internal/feed"

	log "github.com/sirupsen/logrus"
)

// ErrPageFailed marks a category page that could not be fetched or parsed.
var ErrPageFailed = errors.New("page failed")

// ListingParser extracts feed items from one category page.
type ListingParser interface {
	ParseListings(html, pageURL string) ([]domain.Item, error)
}

// Summary describes a finished run.
type Summary struct {
	Pages        int
	SkippedPages int
	Items        int
}

type Service struct {
	client      client.PageClient
	parser      ListingParser
	writer      feed.Writer
	urls        []string
	skipOnError bool
}

func NewService(
	client client.PageClient,
	parser ListingParser,
	writer feed.Writer,
	urls []string,
	skipOnError bool,
) *Service {
	return &Service{
		client:      client,
		parser:      parser,
		writer:      writer,
		urls:        urls,
		skipOnError: skipOnError,
	}
}

// Run scrapes every configured page in order and writes one feed. Pages are
// handled one after another; the feed is only written when all pages were
// processed and at least one of them succeeded.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{}
	items := make([]domain.Item, 0)

	for i, url := range s.urls {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}

		log.Infof("🔄 Processing page %d/%d: %s", i+1, len(s.urls), url)

		pageItems, err := s.scrapePage(ctx, url)
		if err != nil {
			if !s.skipOnError || ctx.Err() != nil {
				return nil, err
			}
			log.Warnf("⚠️ Skipping %s: %v", url, err)
			summary.SkippedPages++
			continue
		}

		summary.Pages++
		items = append(items, pageItems...)
		log.Infof("✅ Page %s: %d items", url, len(pageItems))
	}

	if summary.Pages == 0 {
		return nil, fmt.Errorf("%w: all %d pages failed, keeping previous feed", ErrPageFailed, summary.SkippedPages)
	}

	if err := s.writer.Write(items); err != nil {
		return nil, fmt.Errorf("failed to write feed: %w", err)
	}

	summary.Items = len(items)
	return summary, nil
}

func (s *Service) scrapePage(ctx context.Context, url string) ([]domain.Item, error) {
	html, err := s.client.FetchPage(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrPageFailed, url, err)
	}

	items, err := s.parser.ParseListings(html, url)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrPageFailed, url, err)
	}

	return items, nil
}
