package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		path     string
		contains string
	}{
		{path: "/", contains: "Welcome to Meadowlark Travel!"},
		{path: "/about", contains: "Your fortune for the day"},
		{path: "/tours/hood-river", contains: "Hood River"},
		{path: "/tours/oregon-coast", contains: "Oregon Coast"},
		{path: "/tours/request-group-rate", contains: `action="/process"`},
		{path: "/thank-you", contains: "Thank you"},
		{path: "/nursery-rhyme", contains: "btnNurseryRhyme"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := app.get(t, tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tt.contains)
			assert.Contains(t, body, "Portland", "weather partial is on every page")
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		})
	}
}

func TestShowTestsQuery(t *testing.T) {
	app := newTestApp(t)

	_, body := app.get(t, "/?test=1")
	assert.Contains(t, body, "tests-global.js")

	_, body = app.get(t, "/")
	assert.NotContains(t, body, "tests-global.js")
}

func TestNotFoundPage(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "404 - Not Found")
}

func TestEpicFail(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/epic-fail")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "500 - Server Error")

	// the server keeps serving after the panic
	resp, _ = app.get(t, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNurseryRhymeData(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get(t, "/data/nursery-rhyme")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"animal":"squirrel","bodyPart":"tail","adjective":"bushy","noun":"heck"}`, body)
}

func TestStaticFiles(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.get(t, "/static/css/main.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.get(t, "/static/qa/tests-global.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProcess(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{"name": {"A"}, "email": {"a@b.com"}}
	resp, _ := app.postForm(t, "/process?form=groupRate", form, nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/thank-you", resp.Header.Get("Location"))

	resp, body := app.postForm(t, "/process-ajax", form, map[string]string{"X-Requested-With": "XMLHttpRequest"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true}`, body)

	resp, _ = app.postForm(t, "/process-ajax", form, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/thank-you", resp.Header.Get("Location"))
}

func TestFormPostRequiresCSRFToken(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.client.PostForm(app.server.URL+"/newsletter", url.Values{"email": {"a@b.com"}})
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestFormPostTooLarge(t *testing.T) {
	app := newTestApp(t, withMaxBodyBytes(1<<10))

	resp, _ := app.postForm(t, "/process", url.Values{"name": {strings.Repeat("x", 4<<10)}}, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, _ = app.postForm(t, "/process", url.Values{"name": {"A"}}, nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAdminHost(t *testing.T) {
	app := newTestApp(t)

	get := func(path string) (*http.Response, string) {
		req, err := http.NewRequest(http.MethodGet, app.server.URL+path, nil)
		require.NoError(t, err)
		req.Host = "admin.meadowlark.local"
		return app.do(t, req)
	}

	resp, body := get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Meadowlark Travel Admin")
	assert.Contains(t, body, "HR199")

	resp, body = get("/users")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No newsletter subscribers yet.")

	resp, _ = get("/vacations")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
