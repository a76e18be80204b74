package parser

import (
	"fmt"
	"net/url"
	"strings"

	"catalogfeed/scraper/internal/classifier"
	"catalogfeed/scraper/internal/config"
	"catalogfeed/scraper/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// Options configures listing extraction for one shop layout.
type Options struct {
	Selectors       config.SelectorsConfig
	Defaults        domain.Defaults
	DescriptionMode domain.DescriptionMode
	Currency        string
	AbsoluteLinks   bool
}

// OptionsFromConfig collects the extraction settings from application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Selectors:       cfg.Source.Selectors,
		Defaults:        cfg.Feed.Defaults,
		DescriptionMode: cfg.Feed.DescriptionMode,
		Currency:        cfg.Feed.Currency,
		AbsoluteLinks:   cfg.Feed.AbsoluteLinks,
	}
}

type ListingParser struct {
	opts       Options
	classifier *classifier.Classifier
}

func NewListingParser(opts Options, classifier *classifier.Classifier) *ListingParser {
	return &ListingParser{
		opts:       opts,
		classifier: classifier,
	}
}

// ParseListings extracts the identified items of a category page in
// document order. pageURL is only used to resolve relative links.
func (p *ListingParser) ParseListings(html, pageURL string) ([]domain.Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var base *url.URL
	if p.opts.AbsoluteLinks {
		base, err = url.Parse(pageURL)
		if err != nil {
			return nil, fmt.Errorf("invalid page URL %q: %w", pageURL, err)
		}
	}

	candidates := make([]domain.Item, 0)
	doc.Find(p.opts.Selectors.Item).Each(func(i int, node *goquery.Selection) {
		candidates = append(candidates, p.extractItem(node, base))
	})

	items := keepIdentified(candidates)

	log.Debugf("Extracted %d of %d listings from %s", len(items), len(candidates), pageURL)
	return items, nil
}

// extractItem reads every field of one listing node independently; a
// missing field leaves it empty without affecting the others.
func (p *ListingParser) extractItem(node *goquery.Selection, base *url.URL) domain.Item {
	sel := p.opts.Selectors

	item := domain.Item{
		ID: firstOf(
			attrOf(node, sel.ID, sel.IDAttr),
		),
		Link: firstOf(
			attrOf(node, sel.Link, "href"),
			attrOf(node, "a[href]", "href"),
		),
		Title: firstOf(
			textOf(node, sel.Title),
		),
		ImageLink: firstOf(
			attrOf(node, sel.Image, sel.ImageAttr),
		),
		Price: firstOf(
			p.priceOf(node),
		),
		Availability: p.opts.Defaults.Availability,
		Condition:    p.opts.Defaults.Condition,
		Brand:        p.opts.Defaults.Brand,
	}

	if p.opts.DescriptionMode == domain.DescriptionMirror {
		item.Description = item.Title
	}

	if base != nil {
		item.Link = resolve(base, item.Link)
		item.ImageLink = resolve(base, item.ImageLink)
	}

	item.SetCategory(p.classifier.Classify(item.Title))

	return item
}

func (p *ListingParser) priceOf(node *goquery.Selection) attempt {
	return func() (string, bool) {
		sel := p.opts.Selectors
		if sel.PriceContainer == "" {
			return "", false
		}

		amount := node.Find(sel.PriceContainer).First()
		if sel.PriceAmount != "" {
			amount = amount.Find(sel.PriceAmount).First()
		}
		if amount.Length() == 0 {
			return "", false
		}

		return NormalizePrice(amount.Text(), p.opts.Currency)
	}
}

// keepIdentified drops candidates without a merchant id, preserving order.
func keepIdentified(candidates []domain.Item) []domain.Item {
	items := make([]domain.Item, 0, len(candidates))
	for _, item := range candidates {
		if item.ID == "" {
			log.Debugf("Skipping listing without id (title %q)", item.Title)
			continue
		}
		items = append(items, item)
	}
	return items
}

func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
