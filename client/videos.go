package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aamit98/Reelhub/internal/model"
)

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Register creates an account and stores the returned bearer token on
// the client.
func (c *Client) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/users", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.token = resp.Token
	return &resp.User, nil
}

// Login authenticates and stores the returned bearer token on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.token = resp.Token
	return &resp.User, nil
}

// Videos lists videos, optionally filtered by a search query.
func (c *Client) Videos(ctx context.Context, query string) ([]model.Video, error) {
	endpoint := "/videos"
	if query != "" {
		endpoint += "?query=" + url.QueryEscape(query)
	}

	var videos []model.Video
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &videos); err != nil {
		return nil, err
	}

	return videos, nil
}

// Video fetches a single video by ID.
func (c *Client) Video(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	if err := c.do(ctx, http.MethodGet, "/videos/"+id, nil, &video); err != nil {
		return nil, err
	}

	return &video, nil
}

// Trending lists the top videos by engagement.
func (c *Client) Trending(ctx context.Context) ([]model.Video, error) {
	var videos []model.Video
	if err := c.do(ctx, http.MethodGet, "/videos/trending", nil, &videos); err != nil {
		return nil, err
	}

	return videos, nil
}

// Bookmarks lists the authenticated user's bookmarked videos.
func (c *Client) Bookmarks(ctx context.Context) ([]model.Video, error) {
	var videos []model.Video
	if err := c.do(ctx, http.MethodGet, "/bookmarks", nil, &videos); err != nil {
		return nil, err
	}

	return videos, nil
}
