package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStoredFile(t *testing.T, a *API, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(a.Store.Dir, name), content, 0o644))
}

func serveRequest(a *API, target, rangeHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func testVideoBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

func TestUploadServeOpenEndedRangeEqualsFullBody(t *testing.T) {
	a := newTestAPI(t)
	content := testVideoBytes(4096)
	writeStoredFile(t, a, "clip.mp4", content)

	full := serveRequest(a, "/uploads/clip.mp4", "")
	require.Equal(t, http.StatusOK, full.Code)
	require.Equal(t, content, full.Body.Bytes())

	ranged := serveRequest(a, "/uploads/clip.mp4", "bytes=0-")
	require.Equal(t, http.StatusPartialContent, ranged.Code)

	assert.Equal(t, strconv.Itoa(len(content)), ranged.Header().Get("Content-Length"))
	assert.Equal(t, "bytes 0-4095/4096", ranged.Header().Get("Content-Range"))
	assert.Equal(t, "bytes", ranged.Header().Get("Accept-Ranges"))
	assert.Equal(t, "video/mp4", ranged.Header().Get("Content-Type"))
	assert.Equal(t, "*", ranged.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Length, Content-Range", ranged.Header().Get("Access-Control-Expose-Headers"))

	// Byte-identical to the full GET
	assert.True(t, bytes.Equal(full.Body.Bytes(), ranged.Body.Bytes()))
}

func TestUploadServeSliceIsByteExact(t *testing.T) {
	a := newTestAPI(t)
	content := testVideoBytes(4096)
	writeStoredFile(t, a, "clip.mp4", content)

	cases := []struct {
		header     string
		start, end int64
	}{
		{"bytes=0-0", 0, 0},
		{"bytes=10-49", 10, 49},
		{"bytes=1000-", 1000, 4095},
		{"bytes=4095-4095", 4095, 4095},
		{"bytes=100-999999", 100, 4095}, // end clamped
	}

	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			w := serveRequest(a, "/uploads/clip.mp4", tc.header)
			require.Equal(t, http.StatusPartialContent, w.Code)

			want := content[tc.start : tc.end+1]
			assert.Equal(t, want, w.Body.Bytes())
			assert.Equal(t, strconv.FormatInt(int64(len(want)), 10), w.Header().Get("Content-Length"))
		})
	}
}

func TestUploadServeMissingFileIs404(t *testing.T) {
	a := newTestAPI(t)

	for _, rangeHeader := range []string{"", "bytes=0-"} {
		w := serveRequest(a, "/uploads/nope.mp4", rangeHeader)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestUploadServeNonVideoIgnoresRange(t *testing.T) {
	a := newTestAPI(t)
	content := []byte("not a video at all")
	writeStoredFile(t, a, "thumb.png", content)

	w := serveRequest(a, "/uploads/thumb.png", "bytes=0-5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Empty(t, w.Header().Get("Content-Range"))
}

func TestUploadServeMalformedRangeFallsBackToFullBody(t *testing.T) {
	a := newTestAPI(t)
	content := testVideoBytes(512)
	writeStoredFile(t, a, "clip.mp4", content)

	for _, h := range []string{"bytes=abc-def", "chunks=0-10", "bytes=-50", "bytes=0-10,20-30"} {
		t.Run(h, func(t *testing.T) {
			w := serveRequest(a, "/uploads/clip.mp4", h)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, content, w.Body.Bytes())
		})
	}
}

func TestUploadServeRangePastEOFIs416(t *testing.T) {
	a := newTestAPI(t)
	writeStoredFile(t, a, "clip.mp4", testVideoBytes(100))

	w := serveRequest(a, "/uploads/clip.mp4", "bytes=100-")
	require.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code)
	assert.Equal(t, "bytes */100", w.Header().Get("Content-Range"))
}

func TestUploadServeRejectsDotfiles(t *testing.T) {
	a := newTestAPI(t)

	w := serveRequest(a, "/uploads/.hidden.mp4", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
