package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/schoolsharthi/webclient/internal/gateway"
	"github.com/schoolsharthi/webclient/internal/models"
	"github.com/schoolsharthi/webclient/internal/query"
	"github.com/schoolsharthi/webclient/internal/session"
)

// testEnv wires a fake upstream API behind the real gateway, session store
// and cache, the same object graph main builds.
type testEnv struct {
	e        *echo.Echo
	api      *gateway.Client
	sessions *session.Store
	cache    *query.Cache
	requests *[]string
	upstream *httptest.Server
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	api := gateway.New(srv.URL, gateway.Options{})
	cache := query.NewCache(query.CacheOptions{TTL: time.Minute})
	t.Cleanup(cache.Close)

	return &testEnv{
		e:        echo.New(),
		api:      api,
		sessions: session.NewStore(api.Auth, nil),
		cache:    cache,
		requests: &requests,
		upstream: srv,
	}
}

func (env *testEnv) formContext(method, path string, form url.Values) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return rec, env.e.NewContext(req, rec)
}

func (env *testEnv) getContext(path string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return rec, env.e.NewContext(req, rec)
}

func setUser(c echo.Context, role string) {
	c.Set(CtxUser, &models.User{ID: 1, Username: "asha", Role: role, IsActive: true})
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(fileContent))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestLoginSetsCookieAndRedirects(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "token_type": "bearer"})
		case "/api/auth/me":
			w.Write([]byte(`{"id":1,"username":"asha","role":"student","is_active":true}`))
		}
	})
	h := &AuthHandler{Sessions: env.sessions}

	rec, c := env.formContext(http.MethodPost, "/login", url.Values{
		"username": {"asha"}, "password": {"password"},
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))

	ck := cookieNamed(rec, session.CookieName)
	require.NotNil(t, ck)
	require.Equal(t, "tok-1", ck.Value)
	require.True(t, ck.HttpOnly)
}

func TestLoginWrongPasswordShowsServerDetail(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	})
	h := &AuthHandler{Sessions: env.sessions}

	rec, c := env.formContext(http.MethodPost, "/login", url.Values{
		"username": {"asha"}, "password": {"wrong"},
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Incorrect username or password")
	require.Nil(t, cookieNamed(rec, session.CookieName), "failed login must not set a cookie")
}

func TestLoginMissingFieldsNeverReachServer(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	h := &AuthHandler{Sessions: env.sessions}

	rec, c := env.formContext(http.MethodPost, "/login", url.Values{"username": {"asha"}})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, *env.requests)
}

func TestLoginUpstreamDownShowsNetworkError(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	env.upstream.Close()
	h := &AuthHandler{Sessions: env.sessions}

	rec, c := env.formContext(http.MethodPost, "/login", url.Values{
		"username": {"asha"}, "password": {"password"},
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), "network error")
}

func TestLogoutEvictsCookie(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	h := &AuthHandler{Sessions: env.sessions}

	rec, c := env.getContext("/logout")
	require.NoError(t, h.Logout(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	ck := cookieNamed(rec, session.CookieName)
	require.NotNil(t, ck)
	require.Empty(t, ck.Value)
	require.True(t, ck.Expires.Before(time.Now()))
}

func TestExpiredSessionEvictsCookieAndRedirects(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})
	h := &ContentHandler{API: env.api, Cache: env.cache}

	rec, c := env.getContext("/notes/5/download")
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.DownloadNote(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	ck := cookieNamed(rec, session.CookieName)
	require.NotNil(t, ck, "a 401 must evict the token cookie")
	require.Empty(t, ck.Value)
}

func TestSessionMiddlewareEvictsRejectedCookie(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	})
	mw := &SessionMiddleware{Sessions: env.sessions}

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "rejected"})
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		require.Nil(t, CurrentUser(c), "rejected token must leave the request anonymous")
		require.Empty(t, gateway.TokenFromContext(c.Request().Context()))
		return nil
	}
	require.NoError(t, mw.Load(next)(c))
	require.True(t, called)

	ck := cookieNamed(rec, session.CookieName)
	require.NotNil(t, ck)
	require.Empty(t, ck.Value)
}

func TestSessionMiddlewarePutsTokenInContext(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer good", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":1,"username":"asha","role":"student","is_active":true}`))
	})
	mw := &SessionMiddleware{Sessions: env.sessions}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "good"})
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	require.NoError(t, mw.Load(func(c echo.Context) error {
		require.Equal(t, "good", gateway.TokenFromContext(c.Request().Context()))
		user := CurrentUser(c)
		require.NotNil(t, user)
		require.Equal(t, "asha", user.Username)
		return nil
	})(c))
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, RequireSession(func(echo.Context) error { return nil })(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireAdminRedirectsStudents(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUser(c, models.RoleStudent)

	require.NoError(t, RequireAdmin(func(echo.Context) error { return nil })(c))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireAdminPassesAdmins(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUser(c, models.RoleAdmin)

	passed := false
	require.NoError(t, RequireAdmin(func(echo.Context) error { passed = true; return nil })(c))
	require.True(t, passed)
}

func TestEmptyPYQListShowsMessage(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	h := &ContentHandler{API: env.api, Cache: env.cache}

	rec, c := env.getContext("/pyqs?exam_type=JEE")
	require.NoError(t, h.PYQs(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "No PYQs found")
}

func TestNotesFilterChangeBypassesOldCache(t *testing.T) {
	responses := map[string]string{
		"10": `[{"id":1,"title":"Class 10 Science"}]`,
		"11": `[{"id":2,"title":"Class 11 Physics"}]`,
	}
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(responses[r.URL.Query().Get("class_level")]))
	})
	h := &ContentHandler{API: env.api, Cache: env.cache}

	rec, c := env.getContext("/notes?class_level=10")
	require.NoError(t, h.Notes(c))
	require.Contains(t, rec.Body.String(), "Class 10 Science")

	rec, c = env.getContext("/notes?class_level=11")
	require.NoError(t, h.Notes(c))
	require.Contains(t, rec.Body.String(), "Class 11 Physics")
	require.NotContains(t, rec.Body.String(), "Class 10", "a changed filter must never serve the old filter's data")
}

// slowClass10Env serves class 10 lists only after release is closed, so a
// second request can overtake the first in flight.
func slowClass10Env(t *testing.T) (*testEnv, chan struct{}, chan struct{}) {
	started := make(chan struct{})
	release := make(chan struct{})
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("class_level") == "10" {
			close(started)
			<-release
			w.Write([]byte(`[{"id":1,"title":"Class 10 Science"}]`))
			return
		}
		w.Write([]byte(`[{"id":2,"title":"Class 11 Physics"}]`))
	})
	return env, started, release
}

func TestConcurrentClientsKeepOwnFilters(t *testing.T) {
	env, started, release := slowClass10Env(t)
	h := &ContentHandler{API: env.api, Cache: env.cache}

	recA, cA := env.getContext("/notes?class_level=10")
	cA.Set(CtxToken, "token-a")
	done := make(chan error, 1)
	go func() { done <- h.Notes(cA) }()
	<-started

	recB, cB := env.getContext("/notes?class_level=11")
	cB.Set(CtxToken, "token-b")
	require.NoError(t, h.Notes(cB))
	require.Equal(t, http.StatusOK, recB.Code)
	require.Contains(t, recB.Body.String(), "Class 11 Physics")

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, http.StatusOK, recA.Code, "another client's filter change must not discard this client's result")
	require.Contains(t, recA.Body.String(), "Class 10 Science")
}

func TestSameClientNewerFilterWins(t *testing.T) {
	env, started, release := slowClass10Env(t)
	h := &ContentHandler{API: env.api, Cache: env.cache}

	recA, cA := env.getContext("/notes?class_level=10")
	cA.Set(CtxToken, "token-a")
	done := make(chan error, 1)
	go func() { done <- h.Notes(cA) }()
	<-started

	recB, cB := env.getContext("/notes?class_level=11")
	cB.Set(CtxToken, "token-a")
	require.NoError(t, h.Notes(cB))
	require.Contains(t, recB.Body.String(), "Class 11 Physics")

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, http.StatusNoContent, recA.Code, "the same client's older filter must not be rendered")
}

func TestNotesClassSwitchClearsForeignSubject(t *testing.T) {
	var gotQuery url.Values
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})
	h := &ContentHandler{API: env.api, Cache: env.cache}

	_, c := env.getContext("/notes?class_level=11&subject=Science")
	require.NoError(t, h.Notes(c))
	require.Equal(t, "11", gotQuery.Get("class_level"))
	require.Empty(t, gotQuery.Get("subject"), "class 11 has no Science subject")
}

func TestPYQFiltersUppercasedForUpstream(t *testing.T) {
	var gotQuery url.Values
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})
	h := &ContentHandler{API: env.api, Cache: env.cache}

	_, c := env.getContext("/pyqs?exam_type=neet&class_level=10&subject=Science")
	require.NoError(t, h.PYQs(c))
	require.Equal(t, "10", gotQuery.Get("class_level"))
	require.Equal(t, "SCIENCE", gotQuery.Get("subject"))
	require.Equal(t, "neet", gotQuery.Get("exam_type"))

	_, c = env.getContext("/pyqs?class_level=11&subject=Science")
	require.NoError(t, h.PYQs(c))
	require.Equal(t, "11", gotQuery.Get("class_level"))
	require.Empty(t, gotQuery.Get("subject"), "class 11 has no Science subject")
}

func TestLoginNoCookieWhenProfileFetchFails(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "token_type": "bearer"})
		case "/api/auth/me":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"profile unavailable"}`))
		}
	})
	h := &AuthHandler{Sessions: env.sessions}

	rec, c := env.formContext(http.MethodPost, "/login", url.Values{
		"username": {"asha"}, "password": {"password"},
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Nil(t, cookieNamed(rec, session.CookieName), "a token without a profile must not be persisted")
}

func TestUploadNoteMissingClassBlockedLocally(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	h := &AdminHandler{API: env.api, Cache: env.cache}

	body, contentType := multipartBody(t, map[string]string{
		"title":   "Light",
		"subject": "Science",
		"chapter": "Light",
	}, "file", "light.pdf", "%PDF")

	req := httptest.NewRequest(http.MethodPost, "/admin/notes/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	require.NoError(t, h.UploadNote(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, *env.requests, "an incomplete form must never leave the client")
}

func TestUploadNoteInvalidatesLists(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/admin/notes/upload"):
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":9,"title":"Light"}`))
		default:
			w.Write([]byte(`[{"id":9,"title":"Light"}]`))
		}
	})
	h := &AdminHandler{API: env.api, Cache: env.cache}
	content := &ContentHandler{API: env.api, Cache: env.cache}

	// Warm the student notes list.
	rec, c := env.getContext("/notes")
	require.NoError(t, content.Notes(c))
	warmed := len(*env.requests)

	body, contentType := multipartBody(t, map[string]string{
		"title":       "Light",
		"class_level": "10",
		"subject":     "Science",
		"chapter":     "Light",
	}, "file", "light.pdf", "%PDF")
	req := httptest.NewRequest(http.MethodPost, "/admin/notes/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec = httptest.NewRecorder()
	c = env.e.NewContext(req, rec)
	require.NoError(t, h.UploadNote(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// The next list read must refetch, not reuse the pre-upload cache.
	rec, c = env.getContext("/notes")
	require.NoError(t, content.Notes(c))
	require.Greater(t, len(*env.requests), warmed+1, "upload must invalidate the cached notes list")
}

func TestDeleteUserInvalidatesUserList(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`[{"id":3,"username":"gone"}]`))
	})
	h := &AdminHandler{API: env.api, Cache: env.cache}

	rec, c := env.getContext("/admin/users")
	require.NoError(t, h.Users(c))
	warmed := len(*env.requests)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/3", nil)
	rec = httptest.NewRecorder()
	c = env.e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, h.DeleteUser(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, c = env.getContext("/admin/users")
	require.NoError(t, h.Users(c))
	require.Greater(t, len(*env.requests), warmed+1)
}

func TestUpdateAIKeyRequiresKey(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	h := &AdminHandler{API: env.api, Cache: env.cache}

	rec, c := env.formContext(http.MethodPost, "/admin/settings/ai-key", url.Values{"provider": {"groq"}})
	require.NoError(t, h.UpdateAIKey(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, *env.requests)
}

func TestAskDoubtRequiresQuestion(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	h := &AIHandler{API: env.api, Cache: env.cache}

	rec, c := env.formContext(http.MethodPost, "/ai-doubt", url.Values{"subject": {"Maths"}})
	require.NoError(t, h.AskDoubt(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, *env.requests)
}

func TestSearchRequiresQuery(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	h := &ContentHandler{API: env.api, Cache: env.cache}

	rec, c := env.formContext(http.MethodPost, "/search", url.Values{})
	require.NoError(t, h.Search(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, *env.requests)
}
