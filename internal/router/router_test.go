package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storefront-api/internal/auth"
	"github.com/iliyamo/storefront-api/internal/config"
	"github.com/iliyamo/storefront-api/internal/handler"
	"github.com/iliyamo/storefront-api/internal/imagehost"
	"github.com/iliyamo/storefront-api/internal/leaderboard"
	"github.com/iliyamo/storefront-api/internal/logging"
	"github.com/iliyamo/storefront-api/internal/repository"
	"github.com/iliyamo/storefront-api/internal/service"
)

const (
	adminUser = "admin"
	adminPass = "s3cret"
	jwtSecret = "test-secret"
)

type testServer struct {
	e     *echo.Echo
	store *repository.Store
	token string
}

type stubUploader struct{ deleted []string }

func (s *stubUploader) UploadBase64(_ context.Context, _, kind, folder string) (imagehost.Result, error) {
	id := imagehost.Folder(kind, folder) + "/img1"
	return imagehost.Result{PublicID: id, SecureURL: "https://cdn/" + id, URL: "http://cdn/" + id}, nil
}

func (s *stubUploader) UploadURL(_ context.Context, _, kind, folder string) (imagehost.Result, error) {
	id := imagehost.Folder(kind, folder) + "/remote1"
	return imagehost.Result{PublicID: id, SecureURL: "https://cdn/" + id, URL: "http://cdn/" + id}, nil
}

func (s *stubUploader) Delete(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

type serverOpts struct {
	redis      *redis.Client
	uploader   imagehost.Uploader
	rateLimit  config.RateLimitConfig
	trustProxy bool
}

func newTestServer(t *testing.T, so serverOpts) *testServer {
	t.Helper()
	logger := logging.Discard()
	store := repository.NewMemoryStore()
	svcs := service.New(service.Deps{Store: store, Logger: logger})
	issuer := auth.NewIssuer(jwtSecret, 24*time.Hour)

	h := handler.New(handler.Deps{
		Services:    svcs,
		Credentials: auth.NewCredentials(adminUser, adminPass, ""),
		Issuer:      issuer,
		Uploader:    so.uploader,
		Board:       leaderboard.New(so.redis, ""),
	})
	e := New(Options{
		Handlers:  h,
		Validator: auth.NewValidator(jwtSecret),
		Redis:     so.redis,
		Cache: config.CacheConfig{
			Enabled: true, Methods: map[string]bool{http.MethodGet: true},
			TTL: time.Minute, Prefix: "test:cache", MaxBodyBytes: 1 << 20,
		},
		RateLimit:  so.rateLimit,
		TrustProxy: so.trustProxy,
		Logger:     logger,
	})

	tok, err := issuer.Issue(adminUser)
	require.NoError(t, err)
	return &testServer{e: e, store: store, token: tok.Value}
}

func (s *testServer) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	rec := s.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	rec := s.do(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"s3cret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["expiresAt"])

	verify := s.do(t, http.MethodGet, "/api/admin/verify", "", body["token"].(string))
	require.Equal(t, http.StatusOK, verify.Code)
	assert.Equal(t, "admin", decodeBody[map[string]any](t, verify)["username"])

	for _, bad := range []string{
		`{"username":"admin","password":"nope"}`,
		`{"username":"root","password":"s3cret"}`,
		`{"username":"admin"}`,
		`not json`,
	} {
		rec := s.do(t, http.MethodPost, "/api/admin/login", bad, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, bad)
		assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String(), bad)
	}
}

func TestCreateMenuItemDefaultsFlags(t *testing.T) {
	s := newTestServer(t, serverOpts{})

	rec := s.do(t, http.MethodPost, "/api/admin/menu",
		`{"name":"Test Kebap","price":"50","category":"Ana Yemek","image":"https://img/k.jpg"}`, s.token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeBody[map[string]any](t, rec)
	assert.Equal(t, false, item["isPopular"])
	assert.Equal(t, false, item["isSpicy"])
	assert.Equal(t, false, item["isVegetarian"])
	id := item["id"].(string)
	require.NotEmpty(t, id)

	list := decodeBody[[]map[string]any](t, s.do(t, http.MethodGet, "/api/menu", "", ""))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])

	got := s.do(t, http.MethodGet, "/api/menu/"+id, "", "")
	assert.Equal(t, http.StatusOK, got.Code)
}

func TestAdminWritesRequireToken(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	body := `{"name":"Test Kebap","price":"50","category":"Ana Yemek","image":"https://img/k.jpg"}`

	expiredIssuer := auth.NewIssuer(jwtSecret, -time.Minute)
	expired, err := expiredIssuer.Issue(adminUser)
	require.NoError(t, err)
	forged, err := auth.NewIssuer("another-secret", time.Hour).Issue(adminUser)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"missing":   "",
		"malformed": "abc.def",
		"expired":   expired.Value,
		"forged":    forged.Value,
	} {
		rec := s.do(t, http.MethodPost, "/api/admin/menu", body, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
	n, err := s.store.Menu.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/admin/reservations", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/upload/image", `{"base64":"x"}`, "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodDelete, "/api/upload/storefront/menu/a", "", "").Code)
}

func TestReservationPartySize(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	form := func(size int) string {
		return fmt.Sprintf(`{"customerName":"Ali","email":"ali@example.com","phone":"+90 555","date":"2025-06-01","time":"19:30","partySize":%d}`, size)
	}

	rec := s.do(t, http.MethodPost, "/api/reservations", form(0), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[handler.ErrorBody](t, rec)
	assert.Contains(t, fmt.Sprint(body.Details), "partySize")

	rec = s.do(t, http.MethodPost, "/api/reservations", form(4), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	r := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "pending", r["status"])

	rec = s.do(t, http.MethodPost, "/api/reservations",
		`{"customerName":"Ali","email":"ali@example.com","phone":"1","date":"2025-06-01","time":"19:30","partySize":2,"status":"confirmed"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "clients cannot choose a status")
}

func TestTestimonialRatingBounds(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	body := func(rating int) string {
		return fmt.Sprintf(`{"customerName":"Zeynep","rating":%d,"review":"Harika","date":"2024-04-01"}`, rating)
	}
	for _, rating := range []int{0, 6} {
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/admin/testimonials", body(rating), s.token).Code, rating)
	}
	for rating := 1; rating <= 5; rating++ {
		assert.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/admin/testimonials", body(rating), s.token).Code, rating)
	}
	list := decodeBody[[]map[string]any](t, s.do(t, http.MethodGet, "/api/testimonials", "", ""))
	assert.Len(t, list, 5)
}

func TestUpdateAndDelete(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	created := decodeBody[map[string]any](t, s.do(t, http.MethodPost, "/api/admin/menu",
		`{"name":"Lahmacun","description":"İnce","price":"40","category":"Pide","image":"https://img/l.jpg"}`, s.token))
	id := created["id"].(string)

	rec := s.do(t, http.MethodPut, "/api/admin/menu/"+id, `{"price":"45"}`, s.token)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "45", updated["price"])
	assert.Equal(t, "İnce", updated["description"])

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/admin/menu/missing", `{"price":"1"}`, s.token).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/admin/menu/"+id, `{}`, s.token).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/admin/menu/"+id, `{"isPopular":"yes"}`, s.token).Code)

	rec = s.do(t, http.MethodDelete, "/api/admin/menu/"+id, "", s.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/admin/menu/"+id, "", s.token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/menu/"+id, "", "").Code)
}

func TestInactiveRecordsArePrivate(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	hidden := decodeBody[map[string]any](t, s.do(t, http.MethodPost, "/api/admin/gallery",
		`{"title":"Eski salon","imageUrl":"https://img/old.jpg","isActive":false}`, s.token))
	visible := decodeBody[map[string]any](t, s.do(t, http.MethodPost, "/api/admin/gallery",
		`{"title":"Teras","imageUrl":"https://img/t.jpg"}`, s.token))
	assert.Equal(t, true, visible["isActive"])

	public := decodeBody[[]map[string]any](t, s.do(t, http.MethodGet, "/api/gallery", "", ""))
	require.Len(t, public, 1)
	assert.Equal(t, visible["id"], public[0]["id"])
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/gallery/"+hidden["id"].(string), "", "").Code)

	admin := decodeBody[[]map[string]any](t, s.do(t, http.MethodGet, "/api/admin/gallery", "", s.token))
	assert.Len(t, admin, 2)
}

func TestAboutSortedAndFiltered(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	for _, b := range []string{
		`{"title":"Vizyon","content":"c","section":"vision","displayOrder":2}`,
		`{"title":"Hikaye","content":"c","section":"story","displayOrder":1}`,
		`{"title":"Şef","content":"c","section":"chef","displayOrder":0}`,
	} {
		require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/admin/about", b, s.token).Code)
	}
	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodPost, "/api/admin/about", `{"title":"x","content":"c","section":"menu"}`, s.token).Code)

	list := decodeBody[[]map[string]any](t, s.do(t, http.MethodGet, "/api/about", "", ""))
	require.Len(t, list, 3)
	assert.Equal(t, []any{"Şef", "Hikaye", "Vizyon"}, []any{list[0]["title"], list[1]["title"], list[2]["title"]})

	story := decodeBody[[]map[string]any](t, s.do(t, http.MethodGet, "/api/about?section=story", "", ""))
	require.Len(t, story, 1)
	assert.Equal(t, "Hikaye", story[0]["title"])
}

func TestContactFlow(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	rec := s.do(t, http.MethodPost, "/api/contact", `{"name":"Can","email":"can@example.com","subject":"Catering","message":"Merhaba"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[map[string]any](t, rec)["id"].(string)

	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodPost, "/api/contact", `{"name":"Can","email":"not-an-email","subject":"x","message":"y"}`, "").Code)

	list := decodeBody[[]map[string]any](t, s.do(t, http.MethodGet, "/api/admin/contact", "", s.token))
	assert.Len(t, list, 1)
	assert.Equal(t, false, list[0]["isRead"])
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/admin/contact/"+id, "", s.token).Code)

	rec = s.do(t, http.MethodPatch, "/api/admin/contact/"+id, `{"isRead":true}`, s.token)
	require.Equal(t, http.StatusOK, rec.Code)
	read := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, read["isRead"])
	assert.Equal(t, "Merhaba", read["message"])
	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodPatch, "/api/admin/contact/"+id, `{"message":"edited"}`, s.token).Code)
	assert.Equal(t, http.StatusUnauthorized,
		s.do(t, http.MethodPatch, "/api/admin/contact/"+id, `{"isRead":true}`, "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/admin/contact/"+id, "", s.token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/admin/contact/"+id, "", s.token).Code)
}

func TestReservationAdminRoutes(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	rec := s.do(t, http.MethodPost, "/api/reservations",
		`{"customerName":"Ali","email":"ali@example.com","phone":"555","date":"2025-06-01","time":"19:30","partySize":3}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody[map[string]any](t, rec)["id"].(string)

	qr := s.do(t, http.MethodGet, "/api/admin/reservations/"+id+"/qrcode", "", s.token)
	require.Equal(t, http.StatusOK, qr.Code)
	assert.Equal(t, "image/png", qr.Header().Get(echo.HeaderContentType))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/admin/reservations/"+id+"/qrcode?size=5", "", s.token).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/admin/reservations/"+id+"/qrcode", "", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/reservations/"+id+"/qrcode", "", "").Code)

	rec = s.do(t, http.MethodPatch, "/api/admin/reservations/"+id+"/status", `{"status":"confirmed"}`, s.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "confirmed", decodeBody[map[string]any](t, rec)["status"])
	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodPatch, "/api/admin/reservations/"+id+"/status", `{"status":"seated"}`, s.token).Code)

	confirmed := decodeBody[[]map[string]any](t, s.do(t, http.MethodGet, "/api/admin/reservations?status=confirmed", "", s.token))
	assert.Len(t, confirmed, 1)

	export := s.do(t, http.MethodGet, "/api/admin/reservations/export", "", s.token)
	require.Equal(t, http.StatusOK, export.Code)
	assert.Contains(t, export.Header().Get(echo.HeaderContentDisposition), ".xlsx")
	assert.True(t, strings.HasPrefix(export.Body.String(), "PK"), "xlsx is a zip archive")
}

func TestUploads(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	assert.Equal(t, http.StatusServiceUnavailable,
		s.do(t, http.MethodPost, "/api/upload/url", `{"url":"https://example.com/a.jpg"}`, s.token).Code)

	up := &stubUploader{}
	s = newTestServer(t, serverOpts{uploader: up})

	rec := s.do(t, http.MethodPost, "/api/upload/url", `{"url":"https://example.com/a.jpg","type":"gallery"}`, s.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"public_id":"storefront/gallery/remote1","secure_url":"https://cdn/storefront/gallery/remote1","url":"http://cdn/storefront/gallery/remote1"}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodPost, "/api/upload/image", `{"base64":"abc","type":"poster"}`, s.token).Code)
	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodPost, "/api/upload/url", `{"url":"https://example.com/a.jpg","folder":"../etc"}`, s.token).Code)

	rec = s.do(t, http.MethodDelete, "/api/upload/storefront/gallery/remote1", "", s.token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"storefront/gallery/remote1"}, up.deleted)
}

func TestLeaderboard(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	assert.Equal(t, http.StatusServiceUnavailable, s.do(t, http.MethodGet, "/api/mystery/leaderboard", "", "").Code)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s = newTestServer(t, serverOpts{redis: rdb})

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/mystery/scores", `{"playerName":"ayse","score":90}`, "").Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/mystery/scores", `{"playerName":"mert","score":120}`, "").Code)

	top := decodeBody[[]leaderboard.Entry](t, s.do(t, http.MethodGet, "/api/mystery/leaderboard?limit=5", "", ""))
	require.Len(t, top, 2)
	assert.Equal(t, "mert", top[0].PlayerName)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/mystery/leaderboard?limit=abc", "", "").Code)
}

func TestAdminWritePurgesPublicCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s := newTestServer(t, serverOpts{redis: rdb})

	created := decodeBody[map[string]any](t, s.do(t, http.MethodPost, "/api/admin/menu",
		`{"name":"Ayran","price":"40","category":"İçecek","image":"https://img/a.jpg"}`, s.token))
	id := created["id"].(string)

	first := s.do(t, http.MethodGet, "/api/menu", "", "")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "HIT", s.do(t, http.MethodGet, "/api/menu", "", "").Header().Get("X-Cache"))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/api/admin/menu/"+id, `{"price":"45"}`, s.token).Code)

	after := s.do(t, http.MethodGet, "/api/menu", "", "")
	assert.Equal(t, "MISS", after.Header().Get("X-Cache"))
	list := decodeBody[[]map[string]any](t, after)
	require.Len(t, list, 1)
	assert.Equal(t, "45", list[0]["price"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	rec := s.do(t, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func newLimitedServer(t *testing.T, trustProxy bool) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return newTestServer(t, serverOpts{
		redis:      rdb,
		trustProxy: trustProxy,
		rateLimit: config.RateLimitConfig{
			Enabled: true, Capacity: 2, RefillTokens: 1,
			RefillInterval: time.Hour, TTL: 5 * time.Hour, Prefix: "test:rl",
		},
	})
}

func (s *testServer) badLogin(t *testing.T, remoteAddr, forwardedFor string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"guess"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec.Code
}

func TestLoginLimitIgnoresForwardedForByDefault(t *testing.T) {
	s := newLimitedServer(t, false)

	var codes []int
	for i := 1; i <= 5; i++ {
		codes = append(codes, s.badLogin(t, "203.0.113.7:40000", fmt.Sprintf("198.51.100.%d", i)))
	}
	assert.Equal(t, []int{401, 401, 429, 429, 429}, codes)
}

func TestLoginLimitBehindTrustedProxy(t *testing.T) {
	s := newLimitedServer(t, true)

	// a proxy on a private address forwards distinct clients
	assert.Equal(t, http.StatusUnauthorized, s.badLogin(t, "10.0.0.5:5000", "198.51.100.1"))
	assert.Equal(t, http.StatusUnauthorized, s.badLogin(t, "10.0.0.5:5000", "198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, s.badLogin(t, "10.0.0.5:5000", "198.51.100.1"))
	assert.Equal(t, http.StatusUnauthorized, s.badLogin(t, "10.0.0.5:5000", "198.51.100.2"))

	// a public peer cannot choose its identity with the header
	var blocked int
	for i := 1; i <= 5; i++ {
		if s.badLogin(t, "203.0.113.9:40000", fmt.Sprintf("192.0.2.%d", i)) == http.StatusTooManyRequests {
			blocked++
		}
	}
	assert.Equal(t, 3, blocked)
}

func TestCreateGetDeleteEveryEntity(t *testing.T) {
	cases := []struct {
		name       string
		createPath string // POST target
		adminPath  string // admin read/delete base
		admin      bool   // create needs the admin token
		body       string
		defaults   map[string]any
	}{
		{"menu", "/api/admin/menu", "/api/admin/menu", true,
			`{"name":"Pide","price":"60","category":"Pide","image":"https://img/p.jpg"}`,
			map[string]any{"isSpicy": false, "isVegetarian": false, "isPopular": false}},
		{"gallery", "/api/admin/gallery", "/api/admin/gallery", true,
			`{"title":"Teras","imageUrl":"https://img/t.jpg"}`,
			map[string]any{"isActive": true}},
		{"about", "/api/admin/about", "/api/admin/about", true,
			`{"title":"Hikaye","content":"1985'ten beri","section":"story"}`,
			map[string]any{"displayOrder": float64(0), "isActive": true}},
		{"testimonials", "/api/admin/testimonials", "/api/admin/testimonials", true,
			`{"customerName":"Zeynep","rating":5,"review":"Harika","date":"2024-04-01"}`,
			map[string]any{}},
		{"signature collection", "/api/admin/signature-collection", "/api/admin/signature-collection", true,
			`{"title":"Künefe","description":"Antep fıstıklı","image":"https://img/k.jpg"}`,
			map[string]any{"displayOrder": float64(0), "isActive": true}},
		{"reservations", "/api/reservations", "/api/admin/reservations", false,
			`{"customerName":"Ali","email":"ali@example.com","phone":"555","date":"2025-06-01","time":"19:30","partySize":4}`,
			map[string]any{"status": "pending"}},
		{"contact", "/api/contact", "/api/admin/contact", false,
			`{"name":"Can","email":"can@example.com","subject":"Catering","message":"Merhaba"}`,
			map[string]any{"isRead": false}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, serverOpts{})
			token := ""
			if tc.admin {
				token = s.token
			}

			rec := s.do(t, http.MethodPost, tc.createPath, tc.body, token)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			created := decodeBody[map[string]any](t, rec)
			id, _ := created["id"].(string)
			require.NotEmpty(t, id)

			var input map[string]any
			require.NoError(t, json.Unmarshal([]byte(tc.body), &input))
			for k, v := range input {
				assert.Equal(t, v, created[k], k)
			}
			for k, v := range tc.defaults {
				assert.Equal(t, v, created[k], k)
			}

			got := s.do(t, http.MethodGet, tc.adminPath+"/"+id, "", s.token)
			require.Equal(t, http.StatusOK, got.Code)
			assert.Equal(t, created, decodeBody[map[string]any](t, got))

			require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, tc.adminPath+"/"+id, "", s.token).Code)
			assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, tc.adminPath+"/"+id, "", s.token).Code)
		})
	}
}

func TestMenuUpdateRequiresToken(t *testing.T) {
	s := newTestServer(t, serverOpts{})
	login := decodeBody[map[string]any](t, s.do(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"s3cret"}`, ""))
	token := login["token"].(string)

	created := s.do(t, http.MethodPost, "/api/admin/menu",
		`{"name":"Adana","price":"90","category":"Kebap","image":"https://img/a.jpg"}`, token)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody[map[string]any](t, created)["id"].(string)
	before := s.do(t, http.MethodGet, "/api/admin/menu/"+id, "", token).Body.String()

	expired, err := auth.NewIssuer(jwtSecret, -time.Minute).Issue(adminUser)
	require.NoError(t, err)
	for name, bad := range map[string]string{
		"missing":   "",
		"malformed": "not.a.jwt",
		"expired":   expired.Value,
	} {
		rec := s.do(t, http.MethodPut, "/api/admin/menu/"+id, `{"price":"1"}`, bad)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.JSONEq(t, before, s.do(t, http.MethodGet, "/api/admin/menu/"+id, "", token).Body.String(), name)
	}

	rec := s.do(t, http.MethodPut, "/api/admin/menu/"+id, `{"price":"95"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "95", decodeBody[map[string]any](t, rec)["price"])
}
