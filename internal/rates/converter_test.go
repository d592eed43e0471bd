package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConverter(t *testing.T, handler http.HandlerFunc) (*Converter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewConverterWithBaseURL(srv.URL), srv
}

func TestRate_FetchesAndCaches(t *testing.T) {
	var calls int32
	conv, _ := newTestConverter(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9}}`))
	})

	ctx := context.Background()
	rate, err := conv.Rate(ctx, "EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.9, rate)

	// Second call inside the TTL must be served from cache.
	rate, err = conv.Rate(ctx, "eur")
	require.NoError(t, err)
	assert.Equal(t, 0.9, rate)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRate_USDIsAlwaysOne(t *testing.T) {
	conv, _ := newTestConverter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for USD")
	})
	rate, err := conv.Rate(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

func TestRate_UnsupportedCurrency(t *testing.T) {
	conv, _ := newTestConverter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{}}`))
	})
	_, err := conv.Rate(context.Background(), "XBT")
	assert.Error(t, err)
}

func TestRate_StaleCacheBeatsAPIFailure(t *testing.T) {
	var fail atomic.Bool
	conv, _ := newTestConverter(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"base":"USD","rates":{"GBP":0.8}}`))
	})

	ctx := context.Background()
	_, err := conv.Rate(ctx, "GBP")
	require.NoError(t, err)

	// Expire the entry, then break the API: the stale value wins.
	conv.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	fail.Store(true)

	rate, err := conv.Rate(ctx, "GBP")
	require.NoError(t, err)
	assert.Equal(t, 0.8, rate)
}

func TestRate_StaticFallbackWhenNothingCached(t *testing.T) {
	conv, _ := newTestConverter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rate, err := conv.Rate(context.Background(), "JPY")
	require.NoError(t, err)
	assert.Equal(t, staticRates["JPY"], rate)
}

func TestConvert_CrossesThroughUSD(t *testing.T) {
	conv, _ := newTestConverter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","rates":{"EUR":0.5,"GBP":0.25}}`))
	})

	ctx := context.Background()
	got, err := conv.Convert(ctx, 10, "EUR", "GBP")
	require.NoError(t, err)
	// 10 EUR -> 20 USD -> 5 GBP.
	assert.InDelta(t, 5.0, got, 1e-9)
}

func TestConvert_SameCurrencyIsIdentity(t *testing.T) {
	conv, _ := newTestConverter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	got, err := conv.Convert(context.Background(), 42.5, "EUR", "eur")
	require.NoError(t, err)
	assert.Equal(t, 42.5, got)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("usd"))
	assert.True(t, IsSupported("NOK"))
	assert.False(t, IsSupported("BTC"))
}
