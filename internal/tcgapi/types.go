package tcgapi

import "time"

// SetData is a set as returned by the card API.
type SetData struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Series       string `json:"series"`
	PrintedTotal int    `json:"printedTotal"`
	Total        int    `json:"total"`
	ReleaseDate  string `json:"releaseDate"` // "2023/03/31"
	Images       struct {
		Symbol string `json:"symbol"`
		Logo   string `json:"logo"`
	} `json:"images"`
}

// ParsedReleaseDate converts the API's slash-separated date. Zero time
// when the field is missing or malformed.
func (s SetData) ParsedReleaseDate() time.Time {
	t, err := time.Parse("2006/01/02", s.ReleaseDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CardData is a card as returned by the card API, including the
// market-price block used as a variant signal.
type CardData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Number    string `json:"number"`
	Rarity    string `json:"rarity"`
	Supertype string `json:"supertype"`
	Set       struct {
		ID string `json:"id"`
	} `json:"set"`
	Images struct {
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"images"`
	TCGPlayer struct {
		URL       string     `json:"url"`
		UpdatedAt string     `json:"updatedAt"`
		Prices    PriceSheet `json:"prices"`
	} `json:"tcgplayer"`
}

// PricePoints holds the market figures for one variant, in USD.
type PricePoints struct {
	Low    float64 `json:"low"`
	Mid    float64 `json:"mid"`
	High   float64 `json:"high"`
	Market float64 `json:"market"`
}

// PriceSheet maps a variant price key (normal, holofoil,
// reverseHolofoil, 1stEditionNormal, ...) to its price points.
type PriceSheet map[string]PricePoints

// Keys returns the variant price keys present in the sheet.
func (p PriceSheet) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	return keys
}

type setListResponse struct {
	Data       []SetData `json:"data"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	Count      int       `json:"count"`
	TotalCount int       `json:"totalCount"`
}

type cardListResponse struct {
	Data       []CardData `json:"data"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	Count      int        `json:"count"`
	TotalCount int        `json:"totalCount"`
}

type cardResponse struct {
	Data CardData `json:"data"`
}
