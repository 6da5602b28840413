package seo

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sitemap change frequencies
const (
	ChangeDaily   = "daily"
	ChangeWeekly  = "weekly"
	ChangeMonthly = "monthly"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is one URL in the sitemap
type SitemapEntry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// SitemapEntries lists the static pages followed by every product page
func (s *Service) SitemapEntries(ctx context.Context) ([]SitemapEntry, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	base := strings.TrimRight(s.baseURL, "/")
	now := s.now()
	entries := make([]SitemapEntry, 0, len(products)+3)
	entries = append(entries,
		SitemapEntry{Loc: base, LastMod: now, ChangeFreq: ChangeDaily, Priority: 1.0},
		SitemapEntry{Loc: base + "/shop", LastMod: now, ChangeFreq: ChangeDaily, Priority: 0.9},
		SitemapEntry{Loc: base + "/about", LastMod: now, ChangeFreq: ChangeMonthly, Priority: 0.5},
	)
	for _, p := range products {
		lastMod := p.UpdatedAt
		if lastMod.IsZero() {
			lastMod = now
		}
		entries = append(entries, SitemapEntry{
			Loc:        base + "/product/" + p.ID.String(),
			LastMod:    lastMod,
			ChangeFreq: ChangeWeekly,
			Priority:   0.8,
		})
	}
	return entries, nil
}

// Sitemap renders the sitemap.xml document
func (s *Service) Sitemap(ctx context.Context) ([]byte, error) {
	entries, err := s.SitemapEntries(ctx)
	if err != nil {
		return nil, err
	}

	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, len(entries))}
	for i, e := range entries {
		set.URLs[i] = sitemapURL{
			Loc:        e.Loc,
			LastMod:    e.LastMod.UTC().Format(time.RFC3339),
			ChangeFreq: e.ChangeFreq,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return buf.Bytes(), nil
}

// Robots renders robots.txt. Crawlers are kept out of the API and the hub.
func (s *Service) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /hub/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + strings.TrimRight(s.baseURL, "/") + "/sitemap.xml\n")
	return b.String()
}
