package exchangerateapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	"github.com/temidayo/currency-exchange-service/internal/provider/exchangerateapi"
)

func TestFetchLatest_ParsesRates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"base": "EUR",
			"date": "2025-03-14",
			"rates": {"USD": 1.1705, "NGN": 1823.20872274}
		}`))
	}))
	defer server.Close()

	client := exchangerateapi.NewClient(server.URL, "test-key", "exchangeratesapi")

	rates, err := client.FetchLatest(context.Background(), domain.CurrencyCode("EUR"))
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.True(t, rates[domain.CurrencyCode("USD")].Equal(decimal.RequireFromString("1.1705")))
	assert.True(t, rates[domain.CurrencyCode("NGN")].Equal(decimal.RequireFromString("1823.20872274")))
}

func TestFetchLatest_SkipsNonCurrencyKeys(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"base": "EUR",
			"rates": {"USD": 1.1705, "BTC2025": 0.000011, "us": 0.9}
		}`))
	}))
	defer server.Close()

	client := exchangerateapi.NewClient(server.URL, "test-key", "exchangeratesapi")

	rates, err := client.FetchLatest(context.Background(), domain.CurrencyCode("EUR"))
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Contains(t, rates, domain.CurrencyCode("USD"))
}

func TestFetchLatest_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"base": "EUR", "rates": {"USD": 1.1705}}`))
	}))
	defer server.Close()

	client := exchangerateapi.NewClient(server.URL+"/v1/", "test-key", "exchangeratesapi")

	_, err := client.FetchLatest(context.Background(), domain.CurrencyCode("EUR"))
	require.NoError(t, err)
}

func TestFetchLatest_ProviderErrorPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"code": 101, "info": "invalid api key"}}`))
	}))
	defer server.Close()

	client := exchangerateapi.NewClient(server.URL, "bad-key", "exchangeratesapi")

	_, err := client.FetchLatest(context.Background(), domain.CurrencyCode("EUR"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestFetchLatest_Non2xxStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := exchangerateapi.NewClient(server.URL, "test-key", "exchangeratesapi")

	_, err := client.FetchLatest(context.Background(), domain.CurrencyCode("EUR"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchLatest_EmptyRates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base": "EUR", "rates": {}}`))
	}))
	defer server.Close()

	client := exchangerateapi.NewClient(server.URL, "test-key", "exchangeratesapi")

	_, err := client.FetchLatest(context.Background(), domain.CurrencyCode("EUR"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
	assert.Contains(t, err.Error(), "missing rates")
}

func TestFetchLatest_MalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer server.Close()

	client := exchangerateapi.NewClient(server.URL, "test-key", "exchangeratesapi")

	_, err := client.FetchLatest(context.Background(), domain.CurrencyCode("EUR"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
}

func TestFetchLatest_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base": "EUR", "rates": {"USD": 1.1705}}`))
	}))
	defer server.Close()

	client := exchangerateapi.NewClient(server.URL, "test-key", "exchangeratesapi")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchLatest(ctx, domain.CurrencyCode("EUR"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckHealth(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("base"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		_, _ = w.Write([]byte(`{"base": "EUR", "rates": {"USD": 1.1705}}`))
	}))
	defer server.Close()

	client := exchangerateapi.NewClient(server.URL, "test-key", "exchangeratesapi")
	require.NoError(t, client.CheckHealth(context.Background()))
}

func TestCheckHealth_Unreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	server.Close()

	client := exchangerateapi.NewClient(server.URL, "test-key", "exchangeratesapi")

	err := client.CheckHealth(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProvider)
}

func TestName(t *testing.T) {
	t.Parallel()

	client := exchangerateapi.NewClient("http://localhost", "test-key", "exchangeratesapi")
	assert.Equal(t, "exchangeratesapi", client.Name())
}
