package utils

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".mp4")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello\nworld", SanitizeString("  hel\x00lo\nworld\x07 "))
	assert.Equal(t, "", SanitizeString(" \t "))
}

func TestGenerateState_Unique(t *testing.T) {
	a, err := GenerateState()
	require.NoError(t, err)
	b, err := GenerateState()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFormFiles_OpensEveryPart(t *testing.T) {
	req := multipartRequest(t,
		map[string]string{"chapters": `[{"title":"Intro"}]`},
		map[string]string{"chapter-0-video-0": "aaa", "chapter-0-video-1": "bbbbb"},
	)
	require.NoError(t, ParseMultipart(req, 1<<20))

	files, release, err := FormFiles(req)
	require.NoError(t, err)
	defer release()

	require.Len(t, files, 2)
	assert.Equal(t, int64(5), files["chapter-0-video-1"].Size)
	assert.Equal(t, "chapter-0-video-0.mp4", files["chapter-0-video-0"].Filename)
	content, err := io.ReadAll(files["chapter-0-video-0"].Content)
	require.NoError(t, err)
	assert.Equal(t, "aaa", string(content))
	assert.Equal(t, `[{"title":"Intro"}]`, req.FormValue("chapters"))
}

func TestParseMultipart_RejectsNonMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")

	err := ParseMultipart(req, 1<<20)

	assert.True(t, services.IsValidationError(err))
}

func TestFormFloat(t *testing.T) {
	req := multipartRequest(t, map[string]string{"price": "19.5", "bad": "cheap"}, nil)
	require.NoError(t, ParseMultipart(req, 1<<20))

	v, err := FormFloat(req, "price")
	require.NoError(t, err)
	assert.Equal(t, 19.5, v)

	v, err = FormFloat(req, "missing")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = FormFloat(req, "bad")
	assert.True(t, services.IsValidationError(err))
}
