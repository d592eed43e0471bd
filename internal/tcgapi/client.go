// Package tcgapi is the client for the external card database and
// market-price API. The importer uses it to pull sets and cards; the
// pricing service uses it for per-card price sheets.
package tcgapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const DefaultBaseURL = "https://api.pokemontcg.io/v2"

// MaxPageSize is the largest page the API serves in one response.
// FetchAllCards pages in chunks of this size.
const MaxPageSize = 250

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: baseURL,
		apiKey:  os.Getenv("TCG_API_KEY"),
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("card API returned status %d for %s", res.StatusCode, path)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// FetchSets returns every set the API knows about.
func (c *Client) FetchSets(ctx context.Context) ([]SetData, error) {
	query := url.Values{}
	query.Set("orderBy", "releaseDate")

	var resp setListResponse
	if err := c.get(ctx, "/sets", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FetchCards returns one page of cards for a set, along with the total
// card count so callers can page.
func (c *Client) FetchCards(ctx context.Context, setID string, page, pageSize int) ([]CardData, int, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("set.id:%s", setID))
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("pageSize", fmt.Sprintf("%d", pageSize))
	query.Set("orderBy", "number")

	var resp cardListResponse
	if err := c.get(ctx, "/cards", query, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Data, resp.TotalCount, nil
}

// FetchAllCards pages through a whole set in MaxPageSize chunks.
func (c *Client) FetchAllCards(ctx context.Context, setID string) ([]CardData, error) {
	var all []CardData
	for page := 1; ; page++ {
		cards, total, err := c.FetchCards(ctx, setID, page, MaxPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, cards...)
		if len(cards) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

// FetchCard returns a single card by its API id, including the price
// sheet.
func (c *Client) FetchCard(ctx context.Context, cardID string) (*CardData, error) {
	var resp cardResponse
	if err := c.get(ctx, "/cards/"+url.PathEscape(cardID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
