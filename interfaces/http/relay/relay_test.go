package relay

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// upstreamStub records what the relay forwarded and answers with a fixed
// fingers count.
type upstreamStub struct {
	fileField  string
	fileBody   string
	imageField string
	status     int
	response   string
}

func (u *upstreamStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			var buf bytes.Buffer
			buf.ReadFrom(file)
			u.fileField = header.Filename
			u.fileBody = buf.String()
		}
		u.imageField = r.FormValue("image")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(u.status)
		w.Write([]byte(u.response))
	}
}

func TestAnalyzeForwardsFileUpload(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, response: `{"fingers":3}`}
	server := httptest.NewServer(upstream.handler(t))
	defer server.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "hand.jpg")
	require.NoError(t, err)
	part.Write([]byte("jpeg-bytes"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	NewHandler(server.URL, zap.NewNop()).Analyze(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"fingers":3}`, rec.Body.String())

	// The upload is re-wrapped as the "file" field the upstream expects
	assert.Equal(t, "hand.jpg", upstream.fileField)
	assert.Equal(t, "jpeg-bytes", upstream.fileBody)
}

func TestAnalyzeForwardsBase64Field(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusOK, response: `{"fingers":5}`}
	server := httptest.NewServer(upstream.handler(t))
	defer server.Close()

	form := url.Values{"image": {"data:image/png;base64,aGFuZA=="}}
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	NewHandler(server.URL, zap.NewNop()).Analyze(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"fingers":5}`, rec.Body.String())
	assert.Equal(t, "data:image/png;base64,aGFuZA==", upstream.imageField)
}

func TestAnalyzePassesUpstreamStatusThrough(t *testing.T) {
	upstream := &upstreamStub{status: http.StatusUnprocessableEntity, response: `{"fingers":0}`}
	server := httptest.NewServer(upstream.handler(t))
	defer server.Close()

	form := url.Values{"image": {"data:image/png;base64,xx"}}
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	NewHandler(server.URL, zap.NewNop()).Analyze(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyzeRejectsMissingImage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)

	rec := httptest.NewRecorder()
	NewHandler("http://unused", zap.NewNop()).Analyze(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no image received")
}

func TestAnalyzeUnreachableUpstream(t *testing.T) {
	form := url.Values{"image": {"data:image/png;base64,xx"}}
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	NewHandler("http://127.0.0.1:1", zap.NewNop()).Analyze(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "image analysis failed")
}
