// Package scrape fetches pages from the conference website and extracts the
// parts the assistant can answer from: readable main text, headings, links.
// Fetched pages are cached on disk so repeated questions about the same page
// do not hammer the site.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/gocolly/colly/v2"

	"github.com/apiconf/ndu/internal/config"
	"github.com/apiconf/ndu/internal/log"
)

// Page is the extracted content of one fetched page.
type Page struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Headings  []string  `json:"headings"`
	Links     []Link    `json:"links"`
	FetchedAt time.Time `json:"fetched_at"`
	FromCache bool      `json:"from_cache"`
}

// Link is one outbound link found on a page.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// maxTextLen bounds the extracted text so tool output stays model-sized.
const maxTextLen = 8000

// Service scrapes pages with bounded retries and a TTL file cache.
type Service struct {
	cfg    config.ScraperConfig
	cache  *fileCache
	logger log.Logger
}

// New creates a scrape service from configuration.
func New(cfg config.ScraperConfig, logger log.Logger) (*Service, error) {
	cache, err := newFileCache(cfg.CacheDir, time.Duration(cfg.CacheTTLMinutes)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("init scrape cache: %w", err)
	}
	return &Service{cfg: cfg, cache: cache, logger: logger}, nil
}

// Scrape fetches and extracts a page, serving from cache when fresh. A bare
// path ("/speakers") is resolved against the configured base URL.
func (s *Service) Scrape(ctx context.Context, pageURL string) (*Page, error) {
	resolved, err := s.resolveURL(pageURL)
	if err != nil {
		return nil, err
	}

	if page, ok := s.cache.get(resolved); ok {
		page.FromCache = true
		s.logger.Debug("scrape cache hit", "url", resolved)
		return page, nil
	}

	body, err := s.fetch(ctx, resolved)
	if err != nil {
		return nil, err
	}

	page, err := extract(resolved, body)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", resolved, err)
	}

	if err := s.cache.put(resolved, page); err != nil {
		// Cache failure degrades to refetching, not to a tool error.
		s.logger.Warn("scrape cache write failed", "url", resolved, "error", err)
	}
	return page, nil
}

// resolveURL resolves pageURL against the configured base URL and restricts
// scraping to that host.
func (s *Service) resolveURL(pageURL string) (string, error) {
	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", s.cfg.BaseURL, err)
	}

	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return base.String(), nil
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", pageURL, err)
	}

	resolved := base.ResolveReference(u)
	if resolved.Host != base.Host {
		return "", fmt.Errorf("refusing to scrape host %q, only %q is allowed", resolved.Host, base.Host)
	}
	return resolved.String(), nil
}

// fetch retrieves the page body with bounded retries on transient failure.
func (s *Service) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	collector := colly.NewCollector(
		colly.UserAgent(s.cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(time.Duration(s.cfg.TimeoutMs) * time.Millisecond)
	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: s.cfg.Parallelism,
		Delay:       time.Duration(s.cfg.DelayMs) * time.Millisecond,
	}); err != nil {
		return nil, fmt.Errorf("configure collector: %w", err)
	}

	var body []byte
	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 0 {
			s.logger.Debug("retrying fetch", "url", pageURL, "attempt", attempt)
		}

		body = nil
		if err := collector.Visit(pageURL); err != nil {
			lastErr = err
			continue
		}
		collector.Wait()
		if body != nil {
			return body, nil
		}
		lastErr = fmt.Errorf("empty response from %s", pageURL)
	}
	return nil, fmt.Errorf("fetch %s failed after %d attempts: %w", pageURL, s.cfg.MaxRetries+1, lastErr)
}

// extract pulls title, main text, headings, and links out of an HTML body.
func extract(pageURL string, body []byte) (*Page, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	page := &Page{
		URL:       pageURL,
		FetchedAt: time.Now().UTC(),
	}

	// Readability isolates the main article text. On failure we still
	// return structure from goquery below.
	if article, err := readability.FromReader(bytes.NewReader(body), parsed); err == nil {
		page.Title = article.Title
		page.Text = truncate(normalizeSpace(article.TextContent), maxTextLen)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if page.Title == "" {
		page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if page.Text == "" {
		page.Text = truncate(normalizeSpace(doc.Find("body").Text()), maxTextLen)
	}

	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		if h := normalizeSpace(sel.Text()); h != "" {
			page.Headings = append(page.Headings, h)
		}
	})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}
		if ref, err := url.Parse(href); err == nil {
			href = parsed.ResolveReference(ref).String()
		}
		page.Links = append(page.Links, Link{
			Text: normalizeSpace(sel.Text()),
			URL:  href,
		})
	})

	return page, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate bounds s to at most n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
