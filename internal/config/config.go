package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"catalogfeed/scraper/internal/domain"

	"github.com/andybalholm/cascadia"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	OnFetchErrorFail = "fail"
	OnFetchErrorSkip = "skip"
)

// Config holds all configuration for the application
type Config struct {
	Source     SourceConfig          `mapstructure:"source"`
	HTTP       HTTPConfig            `mapstructure:"http"`
	Feed       FeedConfig            `mapstructure:"feed"`
	Log        LogConfig             `mapstructure:"log"`
	Categories []domain.CategoryRule `mapstructure:"categories"`
}

// SourceConfig describes the pages to scrape and how listings are located in them
type SourceConfig struct {
	URLs         []string        `mapstructure:"urls"`
	OnFetchError string          `mapstructure:"on_fetch_error"`
	Selectors    SelectorsConfig `mapstructure:"selectors"`
}

// SelectorsConfig holds the CSS selectors and attribute names used per listing node
type SelectorsConfig struct {
	Item           string `mapstructure:"item"`
	ID             string `mapstructure:"id"`
	IDAttr         string `mapstructure:"id_attr"`
	Link           string `mapstructure:"link"`
	Title          string `mapstructure:"title"`
	Image          string `mapstructure:"image"`
	ImageAttr      string `mapstructure:"image_attr"`
	PriceContainer string `mapstructure:"price_container"`
	PriceAmount    string `mapstructure:"price_amount"`
}

// HTTPConfig holds page fetcher configuration
type HTTPConfig struct {
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxRetries         int           `mapstructure:"max_retries"`
	RetryWait          time.Duration `mapstructure:"retry_wait"`
	RequestsPerSecond  int           `mapstructure:"requests_per_second"`
	UserAgent          string        `mapstructure:"user_agent"`
	Proxies            []string      `mapstructure:"proxies"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// FeedConfig holds output feed configuration
type FeedConfig struct {
	OutputPath      string                 `mapstructure:"output_path"`
	Preset          string                 `mapstructure:"preset"`
	Columns         []string               `mapstructure:"columns"`
	DescriptionMode domain.DescriptionMode `mapstructure:"description_mode"`
	Delimiter       string                 `mapstructure:"delimiter"`
	Currency        string                 `mapstructure:"currency"`
	AbsoluteLinks   bool                   `mapstructure:"absolute_links"`
	Defaults        domain.Defaults        `mapstructure:"defaults"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the YAML file, environment and bound CLI flags.
// An empty configPath searches for config.yaml in the working directory; a
// missing file is only an error when the path was given explicitly.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("FEEDSCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := applyPreset(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if len(config.Categories) == 0 {
		config.Categories = domain.DefaultCategoryMap()
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// bindFlags maps CLI flags onto config keys. Unset flags fall through to
// file, env and defaults.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}

	bindings := map[string]string{
		"feed.output_path": "output",
		"feed.preset":      "preset",
		"log.level":        "log-level",
	}
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.urls", []string{
		"https://haruu.ee/tootekategooria/koik-tooted/",
		"https://haruu.ee/tootekategooria/koik-tooted/page/2/",
	})
	v.SetDefault("source.on_fetch_error", OnFetchErrorFail)
	v.SetDefault("source.selectors.item", "li[class*='product']")
	v.SetDefault("source.selectors.id", "a[data-product_id]")
	v.SetDefault("source.selectors.id_attr", "data-product_id")
	v.SetDefault("source.selectors.link", "a.woocommerce-loop-product__link")
	v.SetDefault("source.selectors.title", "h2.woocommerce-loop-product__title")
	v.SetDefault("source.selectors.image", "img.attachment-woocommerce_thumbnail")
	v.SetDefault("source.selectors.image_attr", "data-src")
	v.SetDefault("source.selectors.price_container", "span.price")
	v.SetDefault("source.selectors.price_amount", "bdi")

	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.max_retries", 2)
	v.SetDefault("http.retry_wait", "2s")
	v.SetDefault("http.requests_per_second", 1)
	v.SetDefault("http.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("http.proxies", []string{})
	v.SetDefault("http.insecure_skip_verify", false)

	v.SetDefault("feed.output_path", "products.csv")
	v.SetDefault("feed.preset", domain.PresetMerchant)
	v.SetDefault("feed.columns", []string{})
	v.SetDefault("feed.description_mode", "")
	v.SetDefault("feed.delimiter", ",")
	v.SetDefault("feed.currency", "EUR")
	v.SetDefault("feed.absolute_links", false)
	v.SetDefault("feed.defaults.availability", "in stock")
	v.SetDefault("feed.defaults.condition", "new")
	v.SetDefault("feed.defaults.brand", "haruu")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// applyPreset fills the column list and description mode from the selected
// preset unless they were configured explicitly.
func applyPreset(config *Config) error {
	preset, err := domain.LookupPreset(config.Feed.Preset)
	if err != nil {
		return err
	}

	if len(config.Feed.Columns) == 0 {
		config.Feed.Columns = preset.Columns
	}
	if config.Feed.DescriptionMode == "" {
		config.Feed.DescriptionMode = preset.DescriptionMode
	}
	return nil
}

func validate(config *Config) error {
	if len(config.Source.URLs) == 0 {
		return fmt.Errorf("source.urls must list at least one page")
	}
	for _, raw := range config.Source.URLs {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("source.urls contains invalid page URL %q", raw)
		}
	}

	if config.Source.OnFetchError != OnFetchErrorFail && config.Source.OnFetchError != OnFetchErrorSkip {
		return fmt.Errorf("source.on_fetch_error must be %q or %q, got: %s",
			OnFetchErrorFail, OnFetchErrorSkip, config.Source.OnFetchError)
	}

	if config.Source.Selectors.Item == "" || config.Source.Selectors.ID == "" || config.Source.Selectors.IDAttr == "" {
		return fmt.Errorf("source.selectors.item, id and id_attr are required")
	}
	if err := validateSelectors(config.Source.Selectors); err != nil {
		return err
	}

	if config.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0")
	}
	if config.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0, got %d", config.HTTP.MaxRetries)
	}
	if config.HTTP.RequestsPerSecond < 0 {
		return fmt.Errorf("http.requests_per_second must be >= 0, got %d", config.HTTP.RequestsPerSecond)
	}

	if config.Feed.OutputPath == "" {
		return fmt.Errorf("feed.output_path is required")
	}
	if !config.Feed.DescriptionMode.Valid() {
		return fmt.Errorf("feed.description_mode must be %q or %q, got: %s",
			domain.DescriptionMirror, domain.DescriptionEmpty, config.Feed.DescriptionMode)
	}
	if len([]rune(config.Feed.Delimiter)) != 1 || strings.ContainsAny(config.Feed.Delimiter, "\"\r\n") {
		return fmt.Errorf("feed.delimiter must be a single character other than quote or newline, got: %q", config.Feed.Delimiter)
	}
	if config.Feed.Currency == "" {
		return fmt.Errorf("feed.currency is required")
	}

	seen := make(map[string]bool, len(config.Feed.Columns))
	for _, column := range config.Feed.Columns {
		if column == "" {
			return fmt.Errorf("feed.columns must not contain empty names")
		}
		if seen[column] {
			return fmt.Errorf("feed.columns contains duplicate column %q", column)
		}
		seen[column] = true
	}
	if !seen["id"] {
		return fmt.Errorf("feed.columns must include the id column")
	}

	for i, rule := range config.Categories {
		if strings.TrimSpace(rule.Keyword) == "" {
			return fmt.Errorf("categories[%d]: keyword is required", i)
		}
		if rule.Category == "" {
			return fmt.Errorf("categories[%d]: category is required for keyword %q", i, rule.Keyword)
		}
	}

	return nil
}

// validateSelectors compiles every configured CSS selector. goquery treats a
// malformed selector as matching nothing, which would silently empty the feed.
func validateSelectors(sel SelectorsConfig) error {
	selectors := []struct {
		key   string
		value string
	}{
		{"item", sel.Item},
		{"id", sel.ID},
		{"link", sel.Link},
		{"title", sel.Title},
		{"image", sel.Image},
		{"price_container", sel.PriceContainer},
		{"price_amount", sel.PriceAmount},
	}

	for _, s := range selectors {
		if s.value == "" {
			continue
		}
		if _, err := cascadia.Compile(s.value); err != nil {
			return fmt.Errorf("source.selectors.%s is not a valid CSS selector %q: %w", s.key, s.value, err)
		}
	}
	return nil
}
