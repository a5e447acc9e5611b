package tools

import (
	"github.com/firebase/genkit/go/ai"
)

// ScrapePage reads a page from the conference website.
func (k *Kit) ScrapePage(ctx *ai.ToolContext, input ScrapePageInput) (Result, error) {
	k.logger.Debug("ScrapePage called", "url", input.URL)

	if k.scraper == nil {
		return k.degraded(ErrCodeUpstream, "The conference website is not reachable right now."), nil
	}

	page, err := k.scraper.Scrape(ctx.Context, input.URL)
	if err != nil {
		k.logger.Warn("ScrapePage failed", "url", input.URL, "error", err)
		return k.degraded(ErrCodeUpstream, "I couldn't read that page of the conference website."), nil
	}

	return Result{
		Status:  StatusSuccess,
		Message: "Fetched " + page.URL,
		Data: map[string]any{
			"url":        page.URL,
			"title":      page.Title,
			"text":       page.Text,
			"headings":   page.Headings,
			"links":      page.Links,
			"from_cache": page.FromCache,
		},
	}, nil
}
