package seo

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/archerandash/storefront/internal/domain/sales"
)

// Merchant feed constants
const (
	FeedContentType  = "application/rss+xml; charset=utf-8"
	FeedCacheControl = "s-maxage=3600, stale-while-revalidate"

	googleNamespace       = "http://base.google.com/ns/1.0"
	feedTitle             = "Archer and Ash Products"
	feedDescription       = "Modern Canvas Art & Wall Decor"
	defaultBrand          = "Archer and Ash"
	canvasArtCategoryID   = "500044"
	shippingCountry       = "GB"
	shippingService       = "Standard"
	freeShippingPriceText = "0.00 " + sales.DefaultCurrency
)

// ProductLister lists catalog products newest first
type ProductLister interface {
	FindAll(ctx context.Context) ([]catalog.Product, error)
}

type cdata struct {
	Text string `xml:",cdata"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	XmlnsG  string     `xml:"xmlns:g,attr"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	Description string     `xml:"description"`
	Items       []feedItem `xml:"item"`
}

type feedShipping struct {
	Country string `xml:"g:country"`
	Service string `xml:"g:service"`
	Price   string `xml:"g:price"`
}

type feedItem struct {
	ID                    string       `xml:"g:id"`
	Title                 cdata        `xml:"g:title"`
	Description           cdata        `xml:"g:description"`
	Link                  string       `xml:"g:link"`
	ImageLink             string       `xml:"g:image_link"`
	AdditionalImageLinks  []string     `xml:"g:additional_image_link"`
	Condition             string       `xml:"g:condition"`
	Availability          string       `xml:"g:availability"`
	Price                 string       `xml:"g:price"`
	Brand                 string       `xml:"g:brand"`
	MPN                   string       `xml:"g:mpn"`
	IdentifierExists      string       `xml:"g:identifier_exists"`
	ItemGroupID           string       `xml:"g:item_group_id"`
	GoogleProductCategory string       `xml:"g:google_product_category"`
	Shipping              feedShipping `xml:"g:shipping"`
}

// MerchantFeed renders the Google Merchant Center product feed
func (s *Service) MerchantFeed(ctx context.Context) ([]byte, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	base := strings.TrimRight(s.feedBaseURL, "/")
	feed := rssFeed{
		XmlnsG:  googleNamespace,
		Version: "2.0",
		Channel: rssChannel{
			Title:       feedTitle,
			Link:        base,
			Description: feedDescription,
			Items:       make([]feedItem, 0, len(products)),
		},
	}
	for i := range products {
		if item, ok := s.feedItem(base, &products[i]); ok {
			feed.Channel.Items = append(feed.Channel.Items, item)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, fmt.Errorf("failed to encode feed: %w", err)
	}
	return buf.Bytes(), nil
}

// feedItem maps a product to a feed entry. Products without a price or an
// image are left out because Merchant Center rejects them.
func (s *Service) feedItem(base string, p *catalog.Product) (feedItem, bool) {
	price, ok := p.LowestPrice()
	if !ok || len(p.Images) == 0 {
		return feedItem{}, false
	}
	image := NormalizeDriveLink(p.Images[0])
	if image == "" {
		return feedItem{}, false
	}

	var additional []string
	for _, img := range p.Images[1:] {
		additional = append(additional, NormalizeDriveLink(img))
	}

	id := p.ID.String()
	return feedItem{
		ID:                    id,
		Title:                 cdata{p.Title},
		Description:           cdata{p.Description},
		Link:                  base + "/product/" + id,
		ImageLink:             image,
		AdditionalImageLinks:  additional,
		Condition:             "new",
		Availability:          "in_stock",
		Price:                 price.StringFixed(2) + " " + sales.DefaultCurrency,
		Brand:                 s.brand,
		MPN:                   id,
		IdentifierExists:      "no",
		ItemGroupID:           id,
		GoogleProductCategory: canvasArtCategoryID,
		Shipping: feedShipping{
			Country: shippingCountry,
			Service: shippingService,
			Price:   freeShippingPriceText,
		},
	}, true
}
