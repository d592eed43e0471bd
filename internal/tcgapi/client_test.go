package tcgapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCard_DecodesPriceSheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/sv1-25", r.URL.Path)
		w.Write([]byte(`{"data":{
			"id":"sv1-25","name":"Pikachu","number":"25","rarity":"Common","supertype":"Pokemon",
			"set":{"id":"sv1"},
			"tcgplayer":{"prices":{
				"normal":{"low":0.02,"mid":0.1,"high":1.0,"market":0.07},
				"reverseHolofoil":{"low":0.1,"mid":0.25,"high":2.0,"market":0.21}
			}}
		}}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	card, err := client.FetchCard(context.Background(), "sv1-25")
	require.NoError(t, err)

	assert.Equal(t, "Pikachu", card.Name)
	assert.Equal(t, 0.21, card.TCGPlayer.Prices["reverseHolofoil"].Market)
	assert.ElementsMatch(t, []string{"normal", "reverseHolofoil"}, card.TCGPlayer.Prices.Keys())
}

func TestFetchAllCards_Pages(t *testing.T) {
	pages := map[string]string{
		"1": `{"data":[{"id":"sv1-1"},{"id":"sv1-2"}],"page":1,"pageSize":2,"count":2,"totalCount":3}`,
		"2": `{"data":[{"id":"sv1-3"}],"page":2,"pageSize":2,"count":1,"totalCount":3}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "set.id:sv1", r.URL.Query().Get("q"))
		w.Write([]byte(pages[r.URL.Query().Get("page")]))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	cards, total, err := client.FetchCards(context.Background(), "sv1", 1, 2)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, 3, total)

	all, err := client.FetchAllCards(context.Background(), "sv1")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "sv1-3", all[2].ID)
}

func TestFetchSets_ParsesReleaseDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"sv1","name":"Scarlet & Violet","series":"Scarlet & Violet",
			"printedTotal":198,"total":258,"releaseDate":"2023/03/31"}],"totalCount":1}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	sets, err := client.FetchSets(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 1)

	rd := sets[0].ParsedReleaseDate()
	assert.Equal(t, 2023, rd.Year())
	assert.True(t, SetData{ReleaseDate: "bogus"}.ParsedReleaseDate().IsZero())
}

func TestGet_Non200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.FetchSets(context.Background())
	assert.Error(t, err)
}
