package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/Aashish23092/ocr-text-extraction/client"
	"github.com/Aashish23092/ocr-text-extraction/config"
	"github.com/Aashish23092/ocr-text-extraction/middleware"
	"github.com/Aashish23092/ocr-text-extraction/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAnnotator struct {
	detection *client.Detection
	err       error
}

func (s *stubAnnotator) DetectText(ctx context.Context, image []byte) (*client.Detection, error) {
	return s.detection, s.err
}

func (s *stubAnnotator) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", Mode: gin.TestMode},
		Upload: config.UploadConfig{MaxFileSize: config.DefaultMaxUploadSize},
	}
}

func newTestRouter(factory client.Factory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	return NewRouter(testConfig(), service.NewExtractionService(factory, 0, log), log)
}

func staticFactory(a client.Annotator, err error) client.Factory {
	return client.FactoryFunc(func(ctx context.Context) (client.Annotator, error) {
		return a, err
	})
}

func jpegUpload(t *testing.T, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="file"; filename="page.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/extract-text", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestExtractTextEndToEnd(t *testing.T) {
	r := newTestRouter(staticFactory(&stubAnnotator{detection: &client.Detection{Text: "Hello World"}}, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jpegUpload(t, []byte{0xff, 0xd8, 0xff, 0xd9}))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool    `json:"success"`
		Time    float64 `json:"time"`
		Text    string  `json:"text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Hello World", resp.Text)
	assert.Greater(t, resp.Time, 0.0)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestExtractTextEndToEndFailures(t *testing.T) {
	cases := []struct {
		name    string
		factory client.Factory
		status  int
		detail  string
	}{
		{
			name:    "client construction",
			factory: staticFactory(nil, errors.New("google: could not find default credentials")),
			status:  http.StatusInternalServerError,
			detail:  "Failed to create Vision API client. google: could not find default credentials",
		},
		{
			name:    "transport",
			factory: staticFactory(&stubAnnotator{err: errors.New("rpc error: code = Unavailable")}, nil),
			status:  http.StatusBadGateway,
			detail:  "Call to Vision API failed. rpc error: code = Unavailable",
		},
		{
			name:    "provider error",
			factory: staticFactory(&stubAnnotator{detection: &client.Detection{ErrorMessage: "Bad image data."}}, nil),
			status:  http.StatusBadGateway,
			detail:  "Vision API error. Bad image data.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newTestRouter(tc.factory).ServeHTTP(w, jpegUpload(t, []byte{0xff, 0xd8}))

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, `{"detail": `+jsonString(t, tc.detail)+`}`, w.Body.String())
		})
	}
}

func TestSizeGuardRunsBeforeHandler(t *testing.T) {
	var called bool
	factory := client.FactoryFunc(func(ctx context.Context) (client.Annotator, error) {
		called = true
		return &stubAnnotator{detection: &client.Detection{}}, nil
	})
	r := newTestRouter(factory)

	req := jpegUpload(t, []byte{0xff, 0xd8})
	req.Header.Set("Content-Length", "10485761")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"detail": "File larger than limit of 10 MB."}`, w.Body.String())
	assert.False(t, called)
}

func TestRoot(t *testing.T) {
	r := newTestRouter(staticFactory(nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Hello World"}`, w.Body.String())
}

func TestServerShutdown(t *testing.T) {
	log := zap.NewNop()
	srv := New(testConfig(), service.NewExtractionService(staticFactory(nil, nil), 0, log), log)

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-done)
}

func jsonString(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}
