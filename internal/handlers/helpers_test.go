package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-booking-platform/internal/config"
	"travel-booking-platform/internal/middleware"
	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/internal/session"
	"travel-booking-platform/web/templates/emails"
)

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([0-9a-f]{64})"`)

type testApp struct {
	server    *httptest.Server
	client    *http.Client
	email     *services.MockEmailService
	products  *repositories.MemoryProductRepository
	listeners *repositories.MemoryListenerRepository
	tours     *repositories.TourRepository
	uploadDir string
}

type appOption func(*Dependencies)

func withMaxBodyBytes(n int64) appOption {
	return func(d *Dependencies) { d.MaxBodyBytes = n }
}

func withNewsletter(n services.NewsletterServiceInterface) appOption {
	return func(d *Dependencies) { d.Newsletter = n }
}

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()

	logger := zap.NewNop()
	app := &testApp{
		email:     services.NewMockEmailService(logger),
		products:  repositories.NewMemoryProductRepository(models.DefaultCatalog()),
		listeners: repositories.NewMemoryListenerRepository(),
		tours:     repositories.NewTourRepository(models.DefaultTours()),
		uploadDir: t.TempDir(),
	}

	notifier, err := services.NewAsyncNotifier(app.email, 2, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = notifier.Close(time.Second) })

	storage := services.NewLocalStorageService(app.uploadDir, "/uploads", logger)

	deps := Dependencies{
		Logger:     logger,
		Store:      session.NewStore(config.SessionConfig{Secret: "handler-test-secret", MaxAge: 3600}, false),
		Weather:    services.NewWeatherService(),
		Products:   app.products,
		Tours:      app.tours,
		Catalog:    services.NewCatalogService(app.products, app.listeners, logger),
		Carts:      services.NewCartService(app.products, notifier, emails.CartThankYou, logger),
		Newsletter: services.NewNewsletterService(repositories.NewMemoryNewsletterRepository(), logger),
		Contest:    services.NewContestService(storage, repositories.NewMemoryContestRepository(), logger),
		Limiter:    middleware.NewIPRateLimiter(1000, 1000),
		UploadDir:  app.uploadDir,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	app.server = httptest.NewServer(NewRouter(deps))
	t.Cleanup(app.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	app.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return app
}

func (a *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (a *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(t, err)
	return a.do(t, req)
}

// csrfToken loads a form page and returns the session's token
func (a *testApp) csrfToken(t *testing.T) string {
	t.Helper()
	_, body := a.get(t, "/newsletter")
	m := csrfPattern.FindStringSubmatch(body)
	require.Len(t, m, 2, "csrf token not rendered")
	return m[1]
}

// postForm submits a url-encoded form with the session's CSRF token
func (a *testApp) postForm(t *testing.T, path string, form url.Values, headers map[string]string) (*http.Response, string) {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf_token", a.csrfToken(t))

	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return a.do(t, req)
}

func (a *testApp) postMultipart(t *testing.T, path string, fields map[string]string, filename string, content []byte) (*http.Response, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("csrf_token", a.csrfToken(t)))
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(t, req)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for x := 0; x < 400; x++ {
		for y := 0; y < 300; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
