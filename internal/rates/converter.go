// Package rates converts USD market prices into a user's preferred
// display currency. Rates come from an external API, cached in memory
// with a TTL, with stale cache entries and a static table as fallbacks.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	DefaultBaseURL = "https://api.frankfurter.dev/v1/latest"
	DefaultTTL     = time.Hour
)

// Supported display currencies, USD base.
var Supported = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "NOK", "SEK"}

// staticRates is the last-resort fallback when the rates API is down
// and nothing is cached. Rough figures, refreshed occasionally by hand.
var staticRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 148.0,
	"CAD": 1.36,
	"AUD": 1.52,
	"CHF": 0.88,
	"NOK": 10.6,
	"SEK": 10.4,
}

// IsSupported reports whether code is an accepted display currency.
func IsSupported(code string) bool {
	code = strings.ToUpper(code)
	for _, c := range Supported {
		if c == code {
			return true
		}
	}
	return false
}

type cachedRate struct {
	rate      float64
	fetchedAt time.Time
}

// Converter fetches and caches USD-based exchange rates. Safe for
// concurrent use.
type Converter struct {
	client  *http.Client
	baseURL string
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]cachedRate
	now   func() time.Time
}

func NewConverter() *Converter {
	return NewConverterWithBaseURL(DefaultBaseURL)
}

func NewConverterWithBaseURL(baseURL string) *Converter {
	return &Converter{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		ttl:     DefaultTTL,
		cache:   make(map[string]cachedRate),
		now:     time.Now,
	}
}

// Rate returns how many units of currency one USD buys. Resolution
// order: fresh cache, live API, stale cache, static table.
func (c *Converter) Rate(ctx context.Context, currency string) (float64, error) {
	currency = strings.ToUpper(currency)
	if currency == "USD" {
		return 1.0, nil
	}
	if !IsSupported(currency) {
		return 0, fmt.Errorf("unsupported currency %q", currency)
	}

	c.mu.RLock()
	entry, ok := c.cache[currency]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		return entry.rate, nil
	}

	rate, err := c.fetch(ctx, currency)
	if err == nil {
		c.mu.Lock()
		c.cache[currency] = cachedRate{rate: rate, fetchedAt: c.now()}
		c.mu.Unlock()
		return rate, nil
	}

	// Expired entries are kept around exactly for this: a stale rate
	// beats a hardcoded one.
	if ok {
		return entry.rate, nil
	}

	if fallback, found := staticRates[currency]; found {
		return fallback, nil
	}
	return 0, fmt.Errorf("no rate available for %q: %w", currency, err)
}

// Convert converts an amount between two supported currencies, crossing
// through USD.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return amount, nil
	}

	fromRate, err := c.Rate(ctx, from)
	if err != nil {
		return 0, fmt.Errorf("rate for %s: %w", from, err)
	}
	toRate, err := c.Rate(ctx, to)
	if err != nil {
		return 0, fmt.Errorf("rate for %s: %w", to, err)
	}

	usd := amount / fromRate
	return usd * toRate, nil
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func (c *Converter) fetch(ctx context.Context, currency string) (float64, error) {
	url := fmt.Sprintf("%s?base=USD&symbols=%s", c.baseURL, currency)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching rates: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rates API returned status %d", res.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decoding rates response: %w", err)
	}

	rate, ok := payload.Rates[currency]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("rates response missing %q", currency)
	}
	return rate, nil
}
