package container

import (
	"context"
	"fmt"

	"catalogfeed/scraper/internal/classifier"
	"catalogfeed/scraper/internal/client"
	"catalogfeed/scraper/internal/config"
	"catalogfeed/scraper/internal/feed"
	"catalogfeed/scraper/internal/parser"
	"catalogfeed/scraper/internal/proxy"
	"catalogfeed/scraper/internal/service"

	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Client     client.PageClient
	Classifier *classifier.Classifier
	Parser     *parser.ListingParser
	Writer     feed.Writer

	Service *service.Service
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	proxySupplier, err := proxy.NewProxySupplier(ctx, cfg.HTTP.Proxies, cfg.Source.URLs[0])
	if err != nil {
		return nil, fmt.Errorf("failed to initialize proxy supplier: %w", err)
	}
	if len(cfg.HTTP.Proxies) > 0 && proxySupplier.Len() == 0 {
		return nil, fmt.Errorf("none of the %d configured proxies is reachable", len(cfg.HTTP.Proxies))
	}

	container.Client = client.NewPageClient(cfg.HTTP, proxySupplier)

	container.Classifier = classifier.New(cfg.Categories)
	log.Infof("🏷️ Loaded %d category keywords", container.Classifier.Len())

	container.Parser = parser.NewListingParser(parser.OptionsFromConfig(cfg), container.Classifier)

	delimiter := []rune(cfg.Feed.Delimiter)[0]
	container.Writer = feed.NewCSVWriter(cfg.Feed.OutputPath, cfg.Feed.Columns, delimiter)

	container.Service = service.NewService(
		container.Client,
		container.Parser,
		container.Writer,
		cfg.Source.URLs,
		cfg.Source.OnFetchError == config.OnFetchErrorSkip,
	)

	return container, nil
}

// Run scrapes all configured pages and writes the feed
func (c *Container) Run(ctx context.Context) error {
	log.Infof("📄 Feed preset %q: %d columns, description mode %s",
		c.Config.Feed.Preset, len(c.Config.Feed.Columns), c.Config.Feed.DescriptionMode)

	summary, err := c.Service.Run(ctx)
	if err != nil {
		return err
	}

	if summary.SkippedPages > 0 {
		log.Warnf("⚠️ %d of %d pages were skipped", summary.SkippedPages, summary.Pages+summary.SkippedPages)
	}
	log.Infof("✅ %s has been created successfully: %d items from %d pages",
		c.Config.Feed.OutputPath, summary.Items, summary.Pages)
	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}
