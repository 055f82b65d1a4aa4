package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipelineServer records the order of upload and create calls the
// client makes during a Publish.
type pipelineServer struct {
	mu        sync.Mutex
	calls     []string
	uploadErr map[int]bool // 1-based upload index -> fail
	createErr bool
	gate      chan struct{} // when set, the first upload blocks on it
}

func (p *pipelineServer) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("upload request carried no file field: %v", err)
		}

		p.mu.Lock()
		p.calls = append(p.calls, "upload")
		n := 0
		for _, c := range p.calls {
			if c == "upload" {
				n++
			}
		}
		fail := p.uploadErr[n]
		gate := p.gate
		p.mu.Unlock()

		if gate != nil && n == 1 {
			<-gate
		}

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "upload exploded"})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"url": "http://" + r.Host + "/uploads/generated" + r.URL.Query().Get("n") + ".mp4",
		})
	})

	mux.HandleFunc("POST /api/videos", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		p.mu.Lock()
		p.calls = append(p.calls, "create")
		fail := p.createErr
		p.mu.Unlock()

		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "db down"})
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":        "vid123",
			"title":     body["title"],
			"prompt":    body["prompt"],
			"video":     body["video"],
			"thumbnail": body["thumbnail"],
		})
	})

	return mux
}

func (p *pipelineServer) callLog() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func tempFile(t *testing.T, name string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("fake media bytes"), 0o644))
	return p
}

func newTestClient(t *testing.T, p *pipelineServer) *Client {
	t.Helper()

	srv := httptest.NewServer(p.handler(t))
	t.Cleanup(srv.Close)

	c := New(ResolveBaseURL(srv.URL, "", ""))
	c.SetToken("test-token")
	return c
}

func TestPublishOrderAndCounts(t *testing.T) {
	p := &pipelineServer{}
	c := newTestClient(t, p)

	video, err := c.Publish(context.Background(), Draft{
		Title:     "my clip",
		Prompt:    "a prompt",
		Video:     LocalFile(tempFile(t, "clip.mp4")),
		Thumbnail: LocalFile(tempFile(t, "thumb.png")),
	})
	require.NoError(t, err)
	require.NotNil(t, video)

	assert.Equal(t, []string{"upload", "upload", "create"}, p.callLog())
	assert.Equal(t, "my clip", video.Title)
	assert.NotContains(t, video.Video, "file://")
}

func TestPublishVideoUploadFailureStopsSequence(t *testing.T) {
	p := &pipelineServer{uploadErr: map[int]bool{1: true}}
	c := newTestClient(t, p)

	_, err := c.Publish(context.Background(), Draft{
		Title:     "my clip",
		Prompt:    "a prompt",
		Video:     LocalFile(tempFile(t, "clip.mp4")),
		Thumbnail: LocalFile(tempFile(t, "thumb.png")),
	})

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "video", ue.Asset)

	// Only the failing video upload happened: no thumbnail upload, no create
	assert.Equal(t, []string{"upload"}, p.callLog())
}

func TestPublishThumbnailUploadFailureNamesThumbnail(t *testing.T) {
	p := &pipelineServer{uploadErr: map[int]bool{2: true}}
	c := newTestClient(t, p)

	_, err := c.Publish(context.Background(), Draft{
		Title:     "my clip",
		Prompt:    "a prompt",
		Video:     LocalFile(tempFile(t, "clip.mp4")),
		Thumbnail: LocalFile(tempFile(t, "thumb.png")),
	})

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "thumbnail", ue.Asset)
	assert.Equal(t, []string{"upload", "upload"}, p.callLog())
}

func TestPublishRecordCreateFailureIsDistinct(t *testing.T) {
	p := &pipelineServer{createErr: true}
	c := newTestClient(t, p)

	_, err := c.Publish(context.Background(), Draft{
		Title:     "my clip",
		Prompt:    "a prompt",
		Video:     LocalFile(tempFile(t, "clip.mp4")),
		Thumbnail: LocalFile(tempFile(t, "thumb.png")),
	})

	var rce *RecordCreateError
	require.ErrorAs(t, err, &rce)

	var ue *UploadError
	assert.False(t, errors.As(err, &ue), "record create failure must not look like an upload failure")

	assert.Equal(t, []string{"upload", "upload", "create"}, p.callLog())
}

func TestPublishRemoteURLSkipsUpload(t *testing.T) {
	p := &pipelineServer{}
	c := newTestClient(t, p)

	video, err := c.Publish(context.Background(), Draft{
		Title:     "external",
		Prompt:    "a prompt",
		Video:     RemoteURL("https://youtube.com/watch?v=x"),
		Thumbnail: RemoteURL("https://example.com/thumb.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"create"}, p.callLog())
	assert.Equal(t, "https://youtube.com/watch?v=x", video.Video)
}

func TestPublishValidation(t *testing.T) {
	p := &pipelineServer{}
	c := newTestClient(t, p)

	cases := []struct {
		name  string
		draft Draft
		field string
	}{
		{
			name:  "missing title",
			draft: Draft{Prompt: "p", Video: RemoteURL("https://a/v.mp4"), Thumbnail: RemoteURL("https://a/t.png")},
			field: "title",
		},
		{
			name:  "missing prompt",
			draft: Draft{Title: "t", Video: RemoteURL("https://a/v.mp4"), Thumbnail: RemoteURL("https://a/t.png")},
			field: "prompt",
		},
		{
			name:  "missing video slot",
			draft: Draft{Title: "t", Prompt: "p", Thumbnail: RemoteURL("https://a/t.png")},
			field: "video",
		},
		{
			name:  "missing thumbnail slot",
			draft: Draft{Title: "t", Prompt: "p", Video: RemoteURL("https://a/v.mp4")},
			field: "thumbnail",
		},
		{
			name:  "blank url counts as missing",
			draft: Draft{Title: "t", Prompt: "p", Video: RemoteURL(""), Thumbnail: RemoteURL("https://a/t.png")},
			field: "video",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Publish(context.Background(), tc.draft)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	// Validation failures never touch the network
	assert.Empty(t, p.callLog())
}

func TestPublishSingleFlight(t *testing.T) {
	gate := make(chan struct{})
	p := &pipelineServer{gate: gate}
	c := newTestClient(t, p)

	draft := Draft{
		Title:     "my clip",
		Prompt:    "a prompt",
		Video:     LocalFile(tempFile(t, "clip.mp4")),
		Thumbnail: LocalFile(tempFile(t, "thumb.png")),
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Publish(context.Background(), draft)
		done <- err
	}()

	// Wait until the first submission is inside its video upload
	for len(p.callLog()) == 0 {
		time.Sleep(time.Millisecond)
	}

	_, err := c.Publish(context.Background(), draft)
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(gate)
	require.NoError(t, <-done)

	// The rejected second attempt added no calls
	assert.Equal(t, []string{"upload", "upload", "create"}, p.callLog())
}
