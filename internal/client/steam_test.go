package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"steamdeals/scanner/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.SteamConfig {
	return config.SteamConfig{
		StoreBaseURL:      baseURL,
		APIBaseURL:        baseURL,
		Timeout:           5,
		RequestsPerMinute: 6000, // effectively unpaced in tests
	}
}

func TestAppDetailsParsesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appdetails", r.URL.Path)
		assert.Equal(t, "440", r.URL.Query().Get("appids"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"440":{"success":true,"data":{
			"name":"Team Fortress 2",
			"short_description":"Hats.",
			"developers":["Valve"],
			"header_image":"https://cdn.example/tf2.jpg",
			"price_overview":{"currency":"EUR","discount_percent":50,"final_formatted":"4,99€"}
		}}}`))
	}))
	defer srv.Close()

	c := NewSteamClient(testConfig(srv.URL))

	details, err := c.AppDetails(context.Background(), 440)

	require.NoError(t, err)
	require.True(t, details.Success)
	require.NotNil(t, details.Data)
	assert.Equal(t, "Team Fortress 2", details.Data.Name)
	require.NotNil(t, details.Data.PriceOverview)
	assert.Equal(t, 50, details.Data.PriceOverview.DiscountPercent)
	assert.Equal(t, "4,99€", details.Data.PriceOverview.FinalFmt)
}

func TestAppDetailsNonSuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"99999":{"success":false}}`))
	}))
	defer srv.Close()

	c := NewSteamClient(testConfig(srv.URL))

	details, err := c.AppDetails(context.Background(), 99999)

	require.NoError(t, err)
	assert.False(t, details.Success)
	assert.Nil(t, details.Data)
}

func TestAppDetailsMissingKeyIsNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewSteamClient(testConfig(srv.URL))

	details, err := c.AppDetails(context.Background(), 123)

	require.NoError(t, err)
	assert.False(t, details.Success)
}

func TestAppDetailsHTTPErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewSteamClient(testConfig(srv.URL))

	_, err := c.AppDetails(context.Background(), 440)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestAppListParsesApps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ISteamApps/GetAppList/v2/", r.URL.Path)
		w.Write([]byte(`{"applist":{"apps":[
			{"appid":10,"name":"Counter-Strike"},
			{"appid":440,"name":"Team Fortress 2"}
		]}}`))
	}))
	defer srv.Close()

	c := NewSteamClient(testConfig(srv.URL))

	apps, err := c.AppList(context.Background())

	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, 10, apps[0].ID)
	assert.Equal(t, "Team Fortress 2", apps[1].Name)
}
