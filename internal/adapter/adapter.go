package adapter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// Kind is adapter variant.
type Kind int

// Adapter variants.
const (
	// Generic adapter is driven entirely by selector config.
	Generic Kind = iota
	// Specialized adapter knows selectors of a well-known marketplace.
	Specialized
)

// unavailablePhrases mark product as unavailable when found in availability element or page text.
var unavailablePhrases = []string{
	"out of stock",
	"unavailable",
	"sold out",
	"niedostępny",
	"niedostępne",
	"brak w magazynie",
	"wyprzedany",
}

// profile holds built-in selectors of specialized adapter.
type profile struct {
	priceSelectors       []string
	availabilitySelector string
	// buyButtonSelector marks product unavailable when it matches nothing.
	buyButtonSelector string
	nameSelector      string
	imageSelector     string
}

// specialized profiles are matched in order by substring of source name.
var specialized = []struct {
	key     string
	profile profile
}{
	{
		key: "allegro",
		profile: profile{
			priceSelectors:    []string{`[data-box-name="Price"] span`, ".price", `[itemprop="price"]`},
			buyButtonSelector: `button[data-role="buy-button"]`,
			nameSelector:      "h1",
			imageSelector:     `[data-box-name="Gallery"] img`,
		},
	},
	{
		key: "amazon",
		profile: profile{
			priceSelectors:       []string{".a-price-whole", "#priceblock_ourprice", "#priceblock_dealprice", ".a-offscreen"},
			availabilitySelector: "#availability",
			nameSelector:         "#productTitle",
			imageSelector:        "#landingImage",
		},
	},
	{
		key: "empik",
		profile: profile{
			priceSelectors: []string{".price", `[data-ta="product-price"]`},
			nameSelector:   "h1",
			imageSelector:  `[data-ta="product-image"] img`,
		},
	},
}

// Extraction is product data extracted from page.
type Extraction struct {
	Price       decimal.Decimal
	Currency    string
	IsAvailable bool
	Name        string
	ImageURL    string
}

// Adapter extracts price, availability, name and image from source pages.
type Adapter struct {
	kind    Kind
	name    string
	config  models.SelectorConfig
	profile profile
}

// Select returns specialized adapter when source name contains its key, generic adapter otherwise.
func Select(sourceName string, config models.SelectorConfig) Adapter {
	lower := strings.ToLower(sourceName)
	for _, s := range specialized {
		if strings.Contains(lower, s.key) {
			return Adapter{
				kind:    Specialized,
				name:    s.key,
				config:  config,
				profile: s.profile,
			}
		}
	}

	return Adapter{
		kind:   Generic,
		name:   "generic",
		config: config,
	}
}

// Kind returns adapter variant.
func (a Adapter) Kind() Kind {
	return a.kind
}

// Name returns specialized adapter key or "generic".
func (a Adapter) Name() string {
	return a.name
}

// UseBrowser reports whether pages have to be rendered in browser.
// Specialized marketplaces always render client-side.
func (a Adapter) UseBrowser() bool {
	return a.kind == Specialized || a.config.UseBrowser
}

// WaitForSelector returns selector rendered fetch should wait for.
func (a Adapter) WaitForSelector() string {
	return a.config.WaitForSelector
}

// Validate checks adapter has enough configuration to extract price.
func (a Adapter) Validate() error {
	if len(a.priceSelectors()) == 0 {
		return ErrNoPriceSelector
	}
	return nil
}

// Extract parses page content and extracts product data.
// pageURL is used to resolve relative image URLs.
func (a Adapter) Extract(content string, pageURL string) (Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return Extraction{}, fmt.Errorf("can't parse page html: %w", err)
	}

	price, currency, err := a.ExtractPrice(doc)
	if err != nil {
		return Extraction{}, err
	}

	return Extraction{
		Price:       price,
		Currency:    currency,
		IsAvailable: a.ExtractAvailability(doc),
		Name:        a.ExtractName(doc),
		ImageURL:    a.ExtractImage(doc, pageURL),
	}, nil
}

// ExtractPrice tries price selectors in order and returns first parsable price with its currency.
func (a Adapter) ExtractPrice(doc *goquery.Document) (decimal.Decimal, string, error) {
	selectors := a.priceSelectors()
	var unparseable *ParseError

	for _, selector := range selectors {
		selection := doc.Find(selector).First()
		if selection.Length() == 0 {
			continue
		}

		text := strings.TrimSpace(selection.Text())
		if text == "" {
			text, _ = selection.Attr("content")
		}

		if price, ok := ParsePrice(text); ok {
			return price, DetectCurrency(text), nil
		}

		if unparseable == nil {
			unparseable = &ParseError{Kind: KindPriceUnparseable, Selector: selector, Text: text}
		}
	}

	if unparseable != nil {
		return decimal.Decimal{}, "", unparseable
	}

	return decimal.Decimal{}, "", &ParseError{Kind: KindSelectorNotFound, Selector: strings.Join(selectors, ", ")}
}

// ExtractAvailability returns false when unavailable phrase is found in availability element or page text.
func (a Adapter) ExtractAvailability(doc *goquery.Document) bool {
	if selector := a.availabilitySelector(); selector != "" {
		if containsUnavailablePhrase(doc.Find(selector).First().Text()) {
			return false
		}
	}

	if a.profile.buyButtonSelector != "" && doc.Find(a.profile.buyButtonSelector).Length() == 0 {
		return false
	}

	return !containsUnavailablePhrase(doc.Find("body").Text())
}

// ExtractName returns product name or empty string when name selector is unknown or matches nothing.
func (a Adapter) ExtractName(doc *goquery.Document) string {
	selector := a.config.NameSelector
	if selector == "" {
		selector = a.profile.nameSelector
	}
	if selector == "" {
		return ""
	}

	return strings.Join(strings.Fields(doc.Find(selector).First().Text()), " ")
}

// ExtractImage returns absolute product image URL or empty string.
func (a Adapter) ExtractImage(doc *goquery.Document, pageURL string) string {
	selector := a.config.ImageSelector
	if selector == "" {
		selector = a.profile.imageSelector
	}
	if selector == "" {
		return ""
	}

	img := doc.Find(selector).First()
	src, ok := img.Attr("src")
	if !ok || src == "" {
		src, _ = img.Attr("data-src")
	}
	if src == "" {
		return ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}

	return base.ResolveReference(ref).String()
}

func (a Adapter) priceSelectors() []string {
	selectors := make([]string, 0, len(a.profile.priceSelectors)+1)
	if a.config.PriceSelector != "" {
		selectors = append(selectors, a.config.PriceSelector)
	}
	return append(selectors, a.profile.priceSelectors...)
}

func (a Adapter) availabilitySelector() string {
	if a.config.AvailabilitySelector != "" {
		return a.config.AvailabilitySelector
	}
	return a.profile.availabilitySelector
}

func containsUnavailablePhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range unavailablePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
