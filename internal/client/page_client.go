package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"

	"catalogfeed/scraper/internal/config"
	"catalogfeed/scraper/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"golang.org/x/net/html/charset"
	"resty.dev/v3"
)

// PageClient retrieves category pages as UTF-8 HTML.
type PageClient interface {
	FetchPage(ctx context.Context, url string) (string, error)
	Close() error
}

type pageClient struct {
	rl            ratelimit.Limiter
	config        config.HTTPConfig
	httpClient    *resty.Client
	proxySupplier proxy.ProxySupplier
}

func NewPageClient(cfg config.HTTPConfig, proxySupplier proxy.ProxySupplier) PageClient {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(4*cfg.RetryWait).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "et,en-US;q=0.7,en;q=0.5")

	if cfg.InsecureSkipVerify {
		client.SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})
	}

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using initial proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.RequestsPerSecond)
	}

	return &pageClient{
		rl:            rl,
		config:        cfg,
		httpClient:    client,
		proxySupplier: proxySupplier,
	}
}

func (c *pageClient) FetchPage(ctx context.Context, url string) (string, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}

	if isBlocked(resp.StatusCode()) && c.rotateProxy() {
		log.Infof("🔄 Retrying %s with new proxy...", url)

		resp, err = c.httpClient.R().
			SetContext(ctx).
			Get(url)
		if err != nil {
			return "", fmt.Errorf("failed to fetch URL after proxy switch: %w", err)
		}
	}

	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	html, err := decodeBody(resp.Bytes(), resp.Header().Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode page body: %w", err)
	}

	log.Debugf("Fetched %s (%d bytes)", url, len(html))
	return html, nil
}

// rotateProxy switches the client to the next proxy of the pool. It reports
// false when there is no proxy to switch to.
func (c *pageClient) rotateProxy() bool {
	if c.proxySupplier == nil || c.proxySupplier.Len() < 2 {
		return false
	}

	newProxy := c.proxySupplier.Get()
	if newProxy == "" {
		return false
	}

	log.Warnf("🚫 Page blocked, switching to proxy: %s", newProxy)
	c.httpClient.SetProxy(newProxy)
	return true
}

func (c *pageClient) Close() error {
	return c.httpClient.Close()
}

func isBlocked(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests
}

// decodeBody converts the response body to UTF-8 using the declared or
// sniffed charset.
func decodeBody(body []byte, contentType string) (string, error) {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", err
	}

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
