package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-booking-platform/internal/models"
)

const adminHost = "admin.meadowlark.local"

func (a *testApp) adminRequest(t *testing.T, method, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	var req *http.Request
	var err error
	if form != nil {
		req, err = http.NewRequest(method, a.server.URL+path, strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req, err = http.NewRequest(method, a.server.URL+path, nil)
		require.NoError(t, err)
	}
	req.Host = adminHost
	return a.do(t, req)
}

func TestAdminSetSeason(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	resp, body := app.adminRequest(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/vacations/OC39/season"`)
	assert.Contains(t, body, "Mark in season")
	m := csrfPattern.FindStringSubmatch(body)
	require.Len(t, m, 2)
	token := m[1]

	resp, _ = app.adminRequest(t, http.MethodPost, "/vacations/OC39/season", url.Values{
		"csrf_token": {token},
		"in_season":  {"true"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	product, err := app.products.FindOne(ctx, models.ProductFilter{SKU: "OC39"})
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.True(t, product.InSeason)

	resp, _ = app.adminRequest(t, http.MethodPost, "/vacations/OC39/season", url.Values{
		"csrf_token": {token},
		"in_season":  {"false"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	product, err = app.products.FindOne(ctx, models.ProductFilter{SKU: "OC39"})
	require.NoError(t, err)
	assert.False(t, product.InSeason)
}

func TestAdminSetSeason_Rejected(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.adminRequest(t, http.MethodPost, "/vacations/OC39/season", url.Values{"in_season": {"true"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "missing csrf token")

	_, body := app.adminRequest(t, http.MethodGet, "/", nil)
	token := csrfPattern.FindStringSubmatch(body)[1]

	resp, _ = app.adminRequest(t, http.MethodPost, "/vacations/nope/season", url.Values{
		"csrf_token": {token},
		"in_season":  {"true"},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.adminRequest(t, http.MethodPost, "/vacations/OC39/season", url.Values{
		"csrf_token": {token},
		"in_season":  {"maybe"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	product, err := app.products.FindOne(context.Background(), models.ProductFilter{SKU: "OC39"})
	require.NoError(t, err)
	assert.False(t, product.InSeason)
}
