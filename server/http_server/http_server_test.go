package http_server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"base64_converter/batch"
	"base64_converter/compression"
	"base64_converter/config"
	"base64_converter/converter"
	"base64_converter/encoding"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.MaxBatchItems = 3
	cfg.MaxUploadBytes = 1 << 16
	return NewHandler(cfg)
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestEncode(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodPost, "/api/encode", `{"input":"Hello World","format":"base64"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out converter.Output
	decodeBody(t, rec, &out)
	assert.True(t, out.Success)
	assert.Equal(t, "SGVsbG8gV29ybGQ=", out.Output)
	require.NotNil(t, out.Stats)
	assert.Equal(t, 11, out.Stats.OriginalSize)
	assert.Equal(t, 16, out.Stats.EncodedSize)
}

func TestEncodeLineBreaks(t *testing.T) {
	body := `{"input":"` + strings.Repeat("x", 60) + `","lineBreaks":true,"lineLength":20}`
	rec := do(t, newTestHandler(t), http.MethodPost, "/api/encode", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var out converter.Output
	decodeBody(t, rec, &out)
	for _, line := range strings.Split(out.Output, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func TestNonStringInput(t *testing.T) {
	h := newTestHandler(t)
	for _, body := range []string{`{"input":123}`, `{"input":null}`, `{}`} {
		for _, path := range []string{"/api/encode", "/api/decode"} {
			rec := do(t, h, http.MethodPost, path, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, path+" "+body)

			var res encoding.Result
			decodeBody(t, rec, &res)
			assert.False(t, res.Success)
			assert.Equal(t, encoding.KindInputType, res.Kind)
			assert.Contains(t, res.Error, "Input must be a string")
		}
	}
}

func TestDecodeFailure(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/api/decode", `{"input":"Invalid Base64!"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var out converter.Output
	decodeBody(t, rec, &out)
	assert.False(t, out.Success)
	assert.Equal(t, "Invalid Base64 format", out.Error)

	rec = do(t, h, http.MethodPost, "/api/decode", `{"input":"4869","format":"hex"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &out)
	assert.Equal(t, "Hi", out.Output)
	assert.Empty(t, out.Hint)

	rec = do(t, h, http.MethodPost, "/api/decode", `{"input":"4869","format":"base64"}`)
	decodeBody(t, rec, &out)
	assert.Equal(t, "Hex detected! Consider switching to Hex format.", out.Hint)
}

func TestBadRequests(t *testing.T) {
	h := newTestHandler(t)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/encode", `{"input":`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/encode", `{"input":"a","format":"rot13"}`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/api/encode", "").Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge,
		do(t, h, http.MethodPost, "/api/encode", `{"input":"`+strings.Repeat("a", maxJSONBody)+`"}`).Code)
}

func TestDetectFormatSize(t *testing.T) {
	h := newTestHandler(t)

	var detected map[string]string
	decodeBody(t, do(t, h, http.MethodPost, "/api/detect", `{"input":"https://example.com"}`), &detected)
	assert.Equal(t, "url", detected["format"])
	decodeBody(t, do(t, h, http.MethodPost, "/api/detect", `{"input":42}`), &detected)
	assert.Equal(t, "unknown", detected["format"])

	var formatted map[string]string
	decodeBody(t, do(t, h, http.MethodPost, "/api/format", `{"input":"SGVsbG8gV29ybGQ=","lineLength":4}`), &formatted)
	assert.Equal(t, "SGVs\nbG8g\nV29y\nbGQ=", formatted["data"])

	var size map[string]string
	decodeBody(t, do(t, h, http.MethodGet, "/api/size?bytes=1536", ""), &size)
	assert.Equal(t, "1.5 KB", size["size"])
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/size?bytes=-1", "").Code)
}

func TestBatch(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/api/batch", `{"mode":"decode","format":"base64","inputs":["SGk=","bad!",7]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp batchResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "Hi", resp.Items[0].Output)
	assert.Equal(t, batch.StatusError, resp.Items[1].Status)
	assert.Equal(t, batch.StatusError, resp.Items[2].Status)
	assert.Equal(t, batch.Summary{Total: 3, Succeeded: 1, Failed: 2}, resp.Summary)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/batch", `{"inputs":["a","b","c","d"]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/batch", `{"inputs":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/batch", `{"mode":"up","inputs":["a"]}`).Code)
}

func TestBatchCSVExport(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodPost, "/api/batch?export=csv", `{"mode":"encode","format":"hex","inputs":["Hi","say \"yo\""]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename=batch-encode-hex-`)

	lines := strings.Split(rec.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Input,Output,Status,Error", lines[0])
	assert.Equal(t, `"Hi","4869",success,""`, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], `"say ""yo""",`))
}

func TestFileDecode(t *testing.T) {
	h := newTestHandler(t)
	rec := do(t, h, http.MethodPost, "/api/file/decode", `{"input":"SGVsbG8gV29ybGQ=","fileName":"hello.txt"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=hello.txt", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Hello World", rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/file/decode", `{"input":"SGk="}`)
	assert.Equal(t, "attachment; filename=decoded-file", rec.Header().Get("Content-Disposition"))

	rec = do(t, h, http.MethodPost, "/api/file/decode", `{"input":"%%%"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var res encoding.FileResult
	decodeBody(t, rec, &res)
	assert.Equal(t, "Invalid Base64 format", res.Error)
}

func TestFileEncode(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "hello.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Hello World"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/file/encode", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res encoding.FileResult
	decodeBody(t, rec, &res)
	assert.True(t, res.Success)
	assert.Equal(t, "SGVsbG8gV29ybGQ=", res.Data)
	assert.Equal(t, "hello.txt", res.FileName)
	assert.Contains(t, res.FileType, "text/plain")
	assert.Equal(t, 11, res.OriginalSize)
}

func TestFileEncodeMissingField(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/file/encode", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownload(t *testing.T) {
	rec := do(t, newTestHandler(t), http.MethodPost, "/api/download", `{"mode":"encode","format":"base64","output":"SGk="}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filename=encode-base64-")
	assert.Equal(t, "SGk=", rec.Body.String())
}

func TestResponseCompression(t *testing.T) {
	body := `{"input":"` + strings.Repeat("compress me ", 200) + `"}`
	rec := do(t, newTestHandler(t), http.MethodPost, "/api/encode", body, "Accept-Encoding", "gzip")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	plain, err := compression.Decode(rec.Body.Bytes(), "gzip")
	require.NoError(t, err)
	var out converter.Output
	require.NoError(t, json.Unmarshal(plain, &out))
	assert.True(t, out.Success)
}

func TestCompressedRequestBody(t *testing.T) {
	h := newTestHandler(t)
	for _, coding := range []string{"gzip", "br", "deflate", "zstd"} {
		body, err := compression.Encode([]byte(`{"input":"Hello World","format":"hex"}`), coding)
		require.NoError(t, err)

		rec := do(t, h, http.MethodPost, "/api/encode", string(body), "Content-Encoding", coding)
		require.Equal(t, http.StatusOK, rec.Code, coding)
		var out converter.Output
		decodeBody(t, rec, &out)
		assert.Equal(t, "48656c6c6f20576f726c64", out.Output, coding)
	}

	rec := do(t, h, http.MethodPost, "/api/encode", `{"input":"a"}`, "Content-Encoding", "compress")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/encode", `{"input":"a"}`, "Content-Encoding", "gzip")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompressedRequestBodyDecodedLimit(t *testing.T) {
	huge := `{"input":"` + strings.Repeat("a", 2*maxJSONBody) + `"}`
	body, err := compression.Encode([]byte(huge), "gzip")
	require.NoError(t, err)
	require.Less(t, len(body), maxJSONBody)

	rec := do(t, newTestHandler(t), http.MethodPost, "/api/encode", string(body), "Content-Encoding", "gzip")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:5555"
	req.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", clientAddr(req))

	req.RemoteAddr = "198.51.100.1:5555"
	assert.Equal(t, "198.51.100.1:5555", clientAddr(req))
}
