package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mim-rose/nexthire-server/internal/auth"
	"github.com/Mim-rose/nexthire-server/internal/config"
	"github.com/Mim-rose/nexthire-server/internal/database"
	"github.com/Mim-rose/nexthire-server/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:5173"

func testConfig() config.Config {
	return config.Config{
		Env:            "development",
		StoreDriver:    config.DriverMemory,
		JWTSecret:      "test-secret",
		AllowedOrigins: []string{testOrigin},
		MaxUploadBytes: 4096,
		StoreTimeout:   time.Second,
	}
}

func newTestServer(t *testing.T) (*gin.Engine, *database.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := database.NewMemoryStore()
	return NewRouter(testConfig(), store), store
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func insertJob(t *testing.T, store *database.MemoryStore, job models.Job) models.Job {
	t.Helper()
	_, err := store.InsertJob(context.Background(), &job)
	require.NoError(t, err)
	return job
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHomeAndRequestID(t *testing.T) {
	r, _ := newTestServer(t)

	rec := do(r, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to the NextHire API")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	assert.Equal(t, "req-123", do(r, req).Header().Get(RequestIDHeader))
}

func TestHealth(t *testing.T) {
	r, store := newTestServer(t)

	rec := do(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, store.Close(context.Background()))
	rec = do(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "STORE_UNAVAILABLE", decode[map[string]any](t, rec)["code"])
}

func TestAllJobsPagination(t *testing.T) {
	r, store := newTestServer(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 12; i++ {
		insertJob(t, store, models.Job{Title: fmt.Sprintf("job-%d", i), CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}

	rec := do(r, httptest.NewRequest(http.MethodGet, "/jobs/all?page=2&limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	jobs := decode[[]models.Job](t, rec)
	var titles []string
	for _, j := range jobs {
		titles = append(titles, j.Title)
	}
	assert.Equal(t, []string{"job-7", "job-6", "job-5", "job-4", "job-3"}, titles)

	rec = do(r, httptest.NewRequest(http.MethodGet, "/jobs/all", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Job](t, rec), 12)

	for _, q := range []string{"page=0", "page=abc", "limit=0", "limit=101"} {
		rec = do(r, httptest.NewRequest(http.MethodGet, "/jobs/all?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestJobByID(t *testing.T) {
	r, store := newTestServer(t)
	job := insertJob(t, store, models.Job{Title: "Go Developer"})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/jobs/"+job.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Go Developer", decode[models.Job](t, rec).Title)

	rec = do(r, httptest.NewRequest(http.MethodGet, "/jobs/2f1d3c4b-0000-4000-8000-000000000000", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decode[map[string]any](t, rec)["code"])

	rec = do(r, httptest.NewRequest(http.MethodGet, "/jobs/not-an-id", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateJob(t *testing.T) {
	r, store := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(`{"title":"SRE","company":"Acme","postedBy":"hr@acme.io"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(r, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["acknowledged"])
	id, _ := body["insertedId"].(string)
	_, err := store.JobByID(context.Background(), id)
	assert.NoError(t, err)

	rec = do(r, httptest.NewRequest(http.MethodGet, "/jobs?email=hr@acme.io", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Job](t, rec), 1)

	req = httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(`{"company":"Acme","isFeatured":"yes"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = do(r, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]any](t, rec)["error"], "schema validation failed")
}

func TestMissingQueryParameters(t *testing.T) {
	r, _ := newTestServer(t)

	for _, path := range []string{"/jobs", "/job-applications", "/api/search", "/api/search?q="} {
		rec := do(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestCompanyRoutes(t *testing.T) {
	r, store := newTestServer(t)
	insertJob(t, store, models.Job{Company: "acme", CompanyLogo: "a.png", Status: models.JobStatusActive})
	insertJob(t, store, models.Job{Company: "ACME", CompanyLogo: "a.png", Status: models.JobStatusActive})
	insertJob(t, store, models.Job{Company: "AcmeCorp", CompanyLogo: "c.png", Status: models.JobStatusActive})

	for _, path := range []string{"/api/companies", "/api/companies/all"} {
		rec := do(r, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]models.CompanySummary](t, rec), 3, path)
	}

	rec := do(r, httptest.NewRequest(http.MethodGet, "/api/companies/Acme", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string][]models.Job](t, rec)["jobs"], 2)

	rec = do(r, httptest.NewRequest(http.MethodGet, "/api/companies/Initech", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionTokenFlow(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"jane@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(r, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["success"])
	cookie := cookieNamed(rec, auth.CookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, body["token"], cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	check := func(c *http.Cookie) bool {
		req := httptest.NewRequest(http.MethodGet, "/check-auth", nil)
		if c != nil {
			req.AddCookie(c)
		}
		rec := do(r, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return decode[map[string]bool](t, rec)["authenticated"]
	}

	assert.True(t, check(cookie))
	assert.False(t, check(nil))
	assert.False(t, check(&http.Cookie{Name: auth.CookieName, Value: cookie.Value + "x"}))

	forged, err := auth.NewTokenIssuer("other-secret").Issue(map[string]any{"email": "jane@example.com"})
	require.NoError(t, err)
	assert.False(t, check(&http.Cookie{Name: auth.CookieName, Value: forged}))

	rec = do(r, httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := cookieNamed(rec, auth.CookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestIssueTokenRejectsNonObject(t *testing.T) {
	r, _ := newTestServer(t)

	for _, body := range []string{`[1,2]`, `"str"`, `null`, `{`} {
		req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := do(r, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Nil(t, cookieNamed(rec, auth.CookieName), body)
	}
}

func TestCORS(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", testOrigin)
	rec := do(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/job-applications", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = do(r, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")

	req = httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = do(r, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := w.CreateFormFile(name, name+".pdf")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/job-applications", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestSubmitApplication(t *testing.T) {
	r, store := newTestServer(t)
	job := insertJob(t, store, models.Job{Title: "Go Developer", Company: "Acme"})

	rec := do(r, multipartRequest(t,
		map[string]string{"job_id": job.ID, "applicant_email": "jane@example.com", "applicant_name": "Jane"},
		map[string][]byte{"resume": []byte("%PDF-1.4 cv")},
	))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		InsertedID string     `json:"insertedId"`
		JobDetails models.Job `json:"jobDetails"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.InsertedID)
	assert.Equal(t, 1, res.JobDetails.ApplicationCount)

	rec = do(r, httptest.NewRequest(http.MethodGet, "/job-applications?email=jane@example.com", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	apps := decode[[]map[string]any](t, rec)
	require.Len(t, apps, 1)
	assert.Equal(t, "resume.pdf", apps[0]["resume"])
	assert.Equal(t, "Go Developer", apps[0]["title"])
	assert.Equal(t, "Acme", apps[0]["company"])
}

func TestSubmitApplicationErrors(t *testing.T) {
	r, store := newTestServer(t)
	job := insertJob(t, store, models.Job{Title: "Go Developer"})

	rec := do(r, multipartRequest(t, map[string]string{"applicant_email": "jane@example.com"}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, multipartRequest(t, map[string]string{"job_id": "7d9f0a1b-aaaa-4bbb-8ccc-0123456789ab", "applicant_email": "jane@example.com"}, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, multipartRequest(t,
		map[string]string{"job_id": job.ID, "applicant_email": "jane@example.com"},
		map[string][]byte{"resume": bytes.Repeat([]byte("a"), 8192)},
	))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", decode[map[string]any](t, rec)["code"])

	apps, err := store.ApplicationsByApplicant(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Empty(t, apps)
	got, err := store.JobByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ApplicationCount)
}

func TestDeleteApplicationTwice(t *testing.T) {
	r, store := newTestServer(t)
	app := models.JobApplication{JobID: "x", ApplicantEmail: "jane@example.com"}
	_, err := store.InsertApplication(context.Background(), &app)
	require.NoError(t, err)

	rec := do(r, httptest.NewRequest(http.MethodDelete, "/job-applications/"+app.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["deletedCount"])

	rec = do(r, httptest.NewRequest(http.MethodDelete, "/job-applications/"+app.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, float64(0), decode[map[string]any](t, rec)["deletedCount"])
}

func TestSubscribe(t *testing.T) {
	r, store := newTestServer(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return do(r, req)
	}

	rec := post(`{"email":"jane@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Subscribed successfully", decode[map[string]string](t, rec)["message"])
	assert.Len(t, store.Subscriptions(), 1)

	assert.Equal(t, http.StatusBadRequest, post(`{}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"email":"not-an-email"}`).Code)
	assert.Len(t, store.Subscriptions(), 1)
}
