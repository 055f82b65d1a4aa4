package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/aamit98/Reelhub/internal/model"
)

// Draft is a video submission as the user composed it: metadata plus
// one source per asset slot.
type Draft struct {
	Title     string
	Prompt    string
	Video     Source
	Thumbnail Source
}

func (d *Draft) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Reason: "please provide a title"}
	}

	if strings.TrimSpace(d.Prompt) == "" {
		return &ValidationError{Field: "prompt", Reason: "please provide a prompt"}
	}

	if d.Video.isZero() {
		return &ValidationError{Field: "video", Reason: "please select a video or provide a video URL"}
	}

	if d.Thumbnail.isZero() {
		return &ValidationError{Field: "thumbnail", Reason: "please select a thumbnail or provide a thumbnail URL"}
	}

	return nil
}

// Publish turns a draft into a persisted video record. Local-file
// slots are uploaded first, video then thumbnail, strictly in that
// order, then a single create call carries the resolved references.
// Any failure stops the sequence immediately; nothing is retried and
// nothing after the failing step runs. Only one Publish may be in
// flight per client, a concurrent call fails with
// ErrSubmissionInFlight before doing anything.
func (c *Client) Publish(ctx context.Context, draft Draft) (*model.Video, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}

	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.busy.Store(false)

	videoRef, err := c.resolve(ctx, "video", draft.Video)
	if err != nil {
		return nil, err
	}

	thumbRef, err := c.resolve(ctx, "thumbnail", draft.Thumbnail)
	if err != nil {
		return nil, err
	}

	var video model.Video
	err = c.do(ctx, http.MethodPost, "/videos", map[string]string{
		"title":     strings.TrimSpace(draft.Title),
		"prompt":    strings.TrimSpace(draft.Prompt),
		"video":     videoRef,
		"thumbnail": thumbRef,
	}, &video)
	if err != nil {
		return nil, &RecordCreateError{Err: err}
	}

	return &video, nil
}

// resolve collapses a source to a reference the server can store.
// Remote URLs pass through untouched, local files get uploaded.
func (c *Client) resolve(ctx context.Context, asset string, s Source) (string, error) {
	if !s.isLocal() {
		return strings.TrimSpace(s.value), nil
	}

	url, err := c.UploadFile(ctx, s.value)
	if err != nil {
		return "", &UploadError{Asset: asset, Err: err}
	}

	return url, nil
}
