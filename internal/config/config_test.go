package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"catalogfeed/scraper/internal/domain"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Len(t, cfg.Source.URLs, 2)
	assert.Equal(t, OnFetchErrorFail, cfg.Source.OnFetchError)
	assert.Equal(t, "data-product_id", cfg.Source.Selectors.IDAttr)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 2*time.Second, cfg.HTTP.RetryWait)
	assert.Equal(t, "products.csv", cfg.Feed.OutputPath)
	assert.Equal(t, domain.PresetMerchant, cfg.Feed.Preset)
	assert.Len(t, cfg.Feed.Columns, 27)
	assert.Equal(t, domain.DescriptionMirror, cfg.Feed.DescriptionMode)
	assert.Equal(t, domain.Defaults{Availability: "in stock", Condition: "new", Brand: "haruu"}, cfg.Feed.Defaults)
	assert.Equal(t, domain.DefaultCategoryMap(), domain.CategoryMap(cfg.Categories))
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
source:
  urls:
    - https://shop.test/c/
    - https://shop.test/c/page/2/
  on_fetch_error: skip
feed:
  preset: catalog
  output_path: out/feed.csv
  currency: USD
  defaults:
    brand: acme
categories:
  - keyword: Mantel
    category: Coats
  - keyword: kleit
    category: Dresses
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://shop.test/c/", "https://shop.test/c/page/2/"}, cfg.Source.URLs)
	assert.Equal(t, OnFetchErrorSkip, cfg.Source.OnFetchError)
	assert.Equal(t, domain.PresetCatalog, cfg.Feed.Preset)
	assert.Equal(t, domain.DescriptionEmpty, cfg.Feed.DescriptionMode)
	assert.Contains(t, cfg.Feed.Columns, "quantity_to_sell_on_facebook")
	assert.Equal(t, "USD", cfg.Feed.Currency)
	assert.Equal(t, "acme", cfg.Feed.Defaults.Brand)
	assert.Equal(t, "new", cfg.Feed.Defaults.Condition)
	assert.Equal(t, []domain.CategoryRule{
		{Keyword: "Mantel", Category: "Coats"},
		{Keyword: "kleit", Category: "Dresses"},
	}, cfg.Categories)
}

func TestLoad_ExplicitColumnsAndModeOverridePreset(t *testing.T) {
	path := writeConfig(t, `
feed:
  preset: merchant
  columns: [id, title, price, custom_label_0]
  description_mode: empty
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "title", "price", "custom_label_0"}, cfg.Feed.Columns)
	assert.Equal(t, domain.DescriptionEmpty, cfg.Feed.DescriptionMode)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FEEDSCRAPER_FEED_OUTPUT_PATH", "env.csv")
	t.Setenv("FEEDSCRAPER_HTTP_TIMEOUT", "5s")
	t.Setenv("FEEDSCRAPER_SOURCE_ON_FETCH_ERROR", "skip")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "env.csv", cfg.Feed.OutputPath)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, OnFetchErrorSkip, cfg.Source.OnFetchError)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
feed:
  output_path: from-file.csv
`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("preset", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--output", "from-flag.csv", "--preset", "catalog"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "from-flag.csv", cfg.Feed.OutputPath)
	assert.Equal(t, domain.PresetCatalog, cfg.Feed.Preset)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown preset", "feed:\n  preset: amazon\n", "unknown feed preset"},
		{"bad fetch policy", "source:\n  on_fetch_error: retry\n", "source.on_fetch_error"},
		{"relative url", "source:\n  urls: [/c/page/2/]\n", "invalid page URL"},
		{"bad description mode", "feed:\n  description_mode: summary\n", "feed.description_mode"},
		{"columns without id", "feed:\n  columns: [title, price]\n", "id column"},
		{"duplicate column", "feed:\n  columns: [id, title, id]\n", "duplicate column"},
		{"empty keyword", "categories:\n  - keyword: \"\"\n    category: X\n", "keyword is required"},
		{"bad delimiter", "feed:\n  delimiter: \";;\"\n", "feed.delimiter"},
		{"malformed item selector", "source:\n  selectors:\n    item: \"li[class*=\"\n", "source.selectors.item"},
		{"malformed price selector", "source:\n  selectors:\n    price_amount: \"bdi[\"\n", "source.selectors.price_amount"},
		{"zero timeout", "http:\n  timeout: 0s\n", "http.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
