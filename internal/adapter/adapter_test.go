package adapter_test

import (
	"testing"

	"github.com/MichalMitros/price-monitor/internal/adapter"
	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://shop.example.com/products/kettle"

func TestUnitSelect(t *testing.T) {
	tests := map[string]struct {
		sourceName     string
		wantKind       adapter.Kind
		wantName       string
		wantUseBrowser bool
	}{
		"allegro": {
			sourceName:     "Allegro.pl",
			wantKind:       adapter.Specialized,
			wantName:       "allegro",
			wantUseBrowser: true,
		},
		"amazon": {
			sourceName:     "Amazon DE",
			wantKind:       adapter.Specialized,
			wantName:       "amazon",
			wantUseBrowser: true,
		},
		"empik": {
			sourceName:     "empik",
			wantKind:       adapter.Specialized,
			wantName:       "empik",
			wantUseBrowser: true,
		},
		"generic": {
			sourceName: "Local Shop",
			wantKind:   adapter.Generic,
			wantName:   "generic",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := adapter.Select(tt.sourceName, models.SelectorConfig{})

			assert.Equal(t, tt.wantKind, a.Kind(), "should select correct adapter kind")
			assert.Equal(t, tt.wantName, a.Name(), "should select correct adapter")
			assert.Equal(t, tt.wantUseBrowser, a.UseBrowser(), "should decide fetch strategy")
		})
	}
}

func TestUnitValidate(t *testing.T) {
	tests := map[string]struct {
		sourceName string
		config     models.SelectorConfig
		wantErr    error
	}{
		"generic with price selector": {
			sourceName: "Local Shop",
			config:     models.SelectorConfig{PriceSelector: ".price"},
		},
		"generic without price selector": {
			sourceName: "Local Shop",
			config:     models.SelectorConfig{NameSelector: "h1"},
			wantErr:    adapter.ErrNoPriceSelector,
		},
		"specialized without config": {
			sourceName: "allegro",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := adapter.Select(tt.sourceName, tt.config).Validate()

			require.ErrorIs(t, err, tt.wantErr, "should validate adapter config")
		})
	}
}

func TestUnitGenericExtract(t *testing.T) {
	config := models.SelectorConfig{
		PriceSelector:        ".price",
		AvailabilitySelector: ".stock",
		NameSelector:         "h1.title",
		ImageSelector:        "img.main",
	}

	tests := map[string]struct {
		content       string
		config        models.SelectorConfig
		wantPrice     string
		wantCurrency  string
		wantAvailable bool
		wantName      string
		wantImage     string
		wantErr       error
	}{
		"full page": {
			content: `<html><body>
				<h1 class="title">  Czajnik
				elektryczny </h1>
				<img class="main" src="/img/kettle.jpg">
				<span class="price">1 234,56 zł</span>
				<div class="stock">Dostępny</div>
			</body></html>`,
			config:        config,
			wantPrice:     "1234.56",
			wantCurrency:  "PLN",
			wantAvailable: true,
			wantName:      "Czajnik elektryczny",
			wantImage:     "https://shop.example.com/img/kettle.jpg",
		},
		"dollar price and lazy image": {
			content: `<html><body>
				<span class="price">$19.99</span>
				<img class="main" data-src="https://cdn.example.com/kettle.png">
			</body></html>`,
			config:        config,
			wantPrice:     "19.99",
			wantCurrency:  "USD",
			wantAvailable: true,
			wantImage:     "https://cdn.example.com/kettle.png",
		},
		"price in content attribute": {
			content:       `<html><body><meta class="price" content="249.00"></body></html>`,
			config:        config,
			wantPrice:     "249",
			wantCurrency:  "PLN",
			wantAvailable: true,
		},
		"out of stock element": {
			content: `<html><body>
				<span class="price">99,00 zł</span>
				<div class="stock">Out of stock</div>
			</body></html>`,
			config:       config,
			wantPrice:    "99",
			wantCurrency: "PLN",
		},
		"unavailable phrase in body": {
			content: `<html><body>
				<span class="price">99,00 zł</span>
				<p>Produkt chwilowo NIEDOSTĘPNY</p>
			</body></html>`,
			config:       models.SelectorConfig{PriceSelector: ".price"},
			wantPrice:    "99",
			wantCurrency: "PLN",
		},
		"selector not found": {
			content: `<html><body><span class="cost">99,00 zł</span></body></html>`,
			config:  config,
			wantErr: adapter.ErrSelectorNotFound,
		},
		"price unparseable": {
			content: `<html><body><span class="price">Zapytaj o cenę</span></body></html>`,
			config:  config,
			wantErr: adapter.ErrPriceUnparseable,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			extraction, err := adapter.Select("Local Shop", tt.config).Extract(tt.content, pageURL)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			if tt.wantErr != nil {
				var parseErr *adapter.ParseError
				require.ErrorAs(t, err, &parseErr, "should return ParseError")
				return
			}

			assert.True(t, decimal.RequireFromString(tt.wantPrice).Equal(extraction.Price),
				"should extract price %s, got %s", tt.wantPrice, extraction.Price)
			assert.Equal(t, tt.wantCurrency, extraction.Currency, "should detect currency")
			assert.Equal(t, tt.wantAvailable, extraction.IsAvailable, "should detect availability")
			assert.Equal(t, tt.wantName, extraction.Name, "should extract name")
			assert.Equal(t, tt.wantImage, extraction.ImageURL, "should extract image")
		})
	}
}

func TestUnitSpecializedExtract(t *testing.T) {
	tests := map[string]struct {
		sourceName    string
		config        models.SelectorConfig
		content       string
		wantPrice     string
		wantAvailable bool
		wantName      string
	}{
		"allegro with buy button": {
			sourceName: "allegro",
			content: `<html><body>
				<h1>Czajnik</h1>
				<div data-box-name="Price"><span>149,99 zł</span></div>
				<button data-role="buy-button">Kup teraz</button>
			</body></html>`,
			wantPrice:     "149.99",
			wantAvailable: true,
			wantName:      "Czajnik",
		},
		"allegro without buy button": {
			sourceName: "allegro",
			content: `<html><body>
				<h1>Czajnik</h1>
				<div data-box-name="Price"><span>149,99 zł</span></div>
			</body></html>`,
			wantPrice: "149.99",
			wantName:  "Czajnik",
		},
		"amazon availability": {
			sourceName: "amazon",
			content: `<html><body>
				<span id="productTitle">Kettle</span>
				<span class="a-offscreen">$24.50</span>
				<div id="availability">Currently unavailable.</div>
			</body></html>`,
			wantPrice: "24.50",
			wantName:  "Kettle",
		},
		"empik built-in selectors": {
			sourceName: "empik.com",
			content: `<html><body>
				<h1>Książka</h1>
				<div data-ta="product-price">39,99 zł</div>
			</body></html>`,
			wantPrice:     "39.99",
			wantAvailable: true,
			wantName:      "Książka",
		},
		"configured selector takes precedence": {
			sourceName: "empik",
			config:     models.SelectorConfig{PriceSelector: ".promo"},
			content: `<html><body>
				<span class="promo">29,99 zł</span>
				<span class="price">39,99 zł</span>
			</body></html>`,
			wantPrice:     "29.99",
			wantAvailable: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			extraction, err := adapter.Select(tt.sourceName, tt.config).Extract(tt.content, pageURL)

			require.NoError(t, err, "shouldn't return any error")
			assert.True(t, decimal.RequireFromString(tt.wantPrice).Equal(extraction.Price),
				"should extract price %s, got %s", tt.wantPrice, extraction.Price)
			assert.Equal(t, tt.wantAvailable, extraction.IsAvailable, "should detect availability")
			assert.Equal(t, tt.wantName, extraction.Name, "should extract name")
		})
	}
}
