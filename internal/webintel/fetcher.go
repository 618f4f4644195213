// Package webintel fetches a lead's company website and extracts the
// metadata the dashboard shows next to enrichment data. Best-effort:
// a site that cannot be fetched simply yields no snapshot.
package webintel

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

type Snapshot struct {
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Technologies []string  `json:"technologies,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

type Fetcher struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewFetcher(timeoutMS, maxRetries int, log *zap.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Snapshot, error) {
	url, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ProspectrBot/1.0)")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, lastErr
	}

	snap := extract(doc)
	snap.URL = url
	snap.FetchedAt = time.Now()
	return snap, nil
}

func extract(doc *goquery.Document) *Snapshot {
	snap := &Snapshot{}

	snap.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if snap.Title == "" {
		if og, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
			snap.Title = strings.TrimSpace(og)
		}
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		snap.Description = strings.TrimSpace(desc)
	}
	if snap.Description == "" {
		if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
			snap.Description = strings.TrimSpace(og)
		}
	}
	if len(snap.Description) > 300 {
		snap.Description = snap.Description[:300]
	}

	snap.Technologies = detectTechnologies(doc)
	return snap
}

// techSignatures maps script/link URL fragments to technology names.
var techSignatures = map[string]string{
	"react":          "React",
	"_next/":         "Next.js",
	"vue":            "Vue.js",
	"angular":        "Angular",
	"shopify":        "Shopify",
	"wp-content":     "WordPress",
	"hubspot":        "HubSpot",
	"intercom":       "Intercom",
	"segment.com":    "Segment",
	"googletagmanager": "Google Tag Manager",
	"stripe":         "Stripe",
}

func detectTechnologies(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var techs []string

	record := func(src string) {
		src = strings.ToLower(src)
		for fragment, name := range techSignatures {
			if strings.Contains(src, fragment) && !seen[name] {
				seen[name] = true
				techs = append(techs, name)
			}
		}
	}

	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			record(src)
		}
	})
	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			record(href)
		}
	})
	return techs
}

// NormalizeURL coerces the loose website strings models produce
// ("www.acme.com", "acme.com/") into a fetchable https URL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	raw = strings.TrimRight(raw, "/")
	if strings.Count(raw, ".") == 0 {
		return "", fmt.Errorf("invalid url %q", raw)
	}
	return raw, nil
}
