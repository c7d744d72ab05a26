package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnhub/internal/contextutils"
	"learnhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteError_ServiceError(t *testing.T) {
	b := NewBuilder(DefaultConfig(), zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextutils.WithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	b.WriteError(rec, req, services.NewForbiddenError("Course not purchased"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Course not purchased", body["message"])
	assert.Equal(t, "req-1", body["request_id"])
	detail := body["error"].(map[string]interface{})
	assert.Equal(t, services.ErrorTypeForbidden, detail["type"])
}

func TestWriteError_MasksInternalErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	masked := httptest.NewRecorder()
	NewBuilder(&Config{MaskInternalErrors: true}, zap.NewNop()).WriteError(masked, req, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, masked.Code)
	assert.Equal(t, "An internal error occurred", decode(t, masked)["message"])

	open := httptest.NewRecorder()
	NewBuilder(&Config{}, zap.NewNop()).WriteError(open, req, errors.New("pq: connection refused"))
	assert.Equal(t, "pq: connection refused", decode(t, open)["message"])
}

func TestWriteError_ValidationFields(t *testing.T) {
	b := NewBuilder(DefaultConfig(), zap.NewNop())
	rec := httptest.NewRecorder()

	b.WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), services.NewDetailedValidationError("email is invalid",
		[]services.FieldError{{Field: "email", Message: "email is invalid", Code: "email"}}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	detail := decode(t, rec)["error"].(map[string]interface{})
	fields := detail["fields"].([]interface{})
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].(map[string]interface{})["field"])
}

func TestWriteSuccess_MergesPayload(t *testing.T) {
	b := NewBuilder(nil, nil)
	rec := httptest.NewRecorder()

	b.WriteCreated(rec, httptest.NewRequest(http.MethodPost, "/", nil), Payload{"msg": "Course created"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Course created", body["msg"])
}
