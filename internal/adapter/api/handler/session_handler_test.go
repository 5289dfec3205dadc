package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"skillbridge/internal/adapter/api"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = api.NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateSessionValidation(t *testing.T) {
	h := NewSessionHandler(nil)

	c, rec := newTestContext(t, http.MethodPost, "/v1/sessions", `{"user2_id":"abc"}`)
	c.Set("uid", "507f1f77bcf86cd799439011")

	if assert.NoError(t, h.CreateSession(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	}
}

func TestCreateSessionMalformedBody(t *testing.T) {
	h := NewSessionHandler(nil)

	c, rec := newTestContext(t, http.MethodPost, "/v1/sessions", `{not json`)

	if assert.NoError(t, h.CreateSession(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestCreateSessionWithoutAuth(t *testing.T) {
	h := NewSessionHandler(nil)

	body := `{
		"user2_id": "507f1f77bcf86cd799439012",
		"skill1_id": "507f1f77bcf86cd799439013",
		"skill2_id": "507f1f77bcf86cd799439014",
		"description1": "guitar lessons",
		"description2": "spanish practice",
		"start_date": "2026-10-01T10:00:00Z"
	}`
	c, rec := newTestContext(t, http.MethodPost, "/v1/sessions", body)

	if assert.NoError(t, h.CreateSession(c)) {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestGetSessionInvalidID(t *testing.T) {
	h := NewSessionHandler(nil)

	c, rec := newTestContext(t, http.MethodGet, "/", "")
	c.SetPath("/v1/sessions/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-an-objectid")

	if assert.NoError(t, h.GetSession(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestRespondToSessionInvalidAction(t *testing.T) {
	h := NewSessionHandler(nil)

	c, rec := newTestContext(t, http.MethodPost, "/", `{"action":"maybe"}`)
	c.SetPath("/v1/sessions/:id/respond")
	c.SetParamNames("id")
	c.SetParamValues("507f1f77bcf86cd799439011")
	c.Set("uid", "507f1f77bcf86cd799439012")

	if assert.NoError(t, h.RespondToSession(c)) {
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	}
}
