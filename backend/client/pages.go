package client

import (
	"errors"
	"fmt"
	"strings"

	"optiwave/backend/common"
	"optiwave/backend/model"

	"golang.org/x/sync/errgroup"
)

// Each page view performs exactly one read (or write) cycle against the API
// and mirrors the result into local state; nothing is held across
// navigations.

// HomeView holds the home page's two independent sections. A section that
// failed to load carries its error and renders as empty.
type HomeView struct {
	Featured    []*model.Video
	Recent      []*model.Video
	FeaturedErr error
	RecentErr   error
}

// LoadHome fetches the featured list and a recent list concurrently. The
// sections fail independently; LoadHome itself never errors.
func LoadHome(c *Client) *HomeView {
	view := &HomeView{}
	var g errgroup.Group
	g.Go(func() error {
		view.Featured, view.FeaturedErr = c.FeaturedVideos()
		return nil
	})
	g.Go(func() error {
		var list *VideoList
		list, view.RecentErr = c.ListVideos(1, common.DefaultRecentLimit, "", "")
		if view.RecentErr == nil {
			view.Recent = list.Videos
		}
		return nil
	})
	_ = g.Wait()
	return view
}

// SearchView re-queries on every term or category change and replaces its
// result set.
type SearchView struct {
	client     *Client
	Term       string
	Category   string
	Categories []string
	Results    []*model.Video
	Err        error
}

// LoadSearch builds the search page, optionally seeded with a query term
// from the navigation URL.
func LoadSearch(c *Client, initialTerm string) (*SearchView, error) {
	categories, err := c.Categories()
	if err != nil {
		return nil, err
	}
	view := &SearchView{
		client:     c,
		Term:       initialTerm,
		Categories: categories,
	}
	view.refresh()
	return view, nil
}

// SetTerm updates the search term and re-queries.
func (v *SearchView) SetTerm(term string) {
	v.Term = term
	v.refresh()
}

// SetCategory updates the category filter and re-queries.
func (v *SearchView) SetCategory(category string) {
	v.Category = category
	v.refresh()
}

func (v *SearchView) refresh() {
	list, err := v.client.ListVideos(0, 0, v.Category, v.Term)
	if err != nil {
		v.Results = nil
		v.Err = err
		return
	}
	v.Results = list.Videos
	v.Err = nil
}

// TrendingView is a single fetch on entry.
type TrendingView struct {
	Videos []*model.Video
	Empty  bool
}

func LoadTrending(c *Client) (*TrendingView, error) {
	videos, err := c.TrendingVideos()
	if err != nil {
		return nil, err
	}
	return &TrendingView{Videos: videos, Empty: len(videos) == 0}, nil
}

// DetailView renders one record or a not-found state. Loading it increments
// the server-side view count; revisiting increments again.
type DetailView struct {
	Video    *model.Video
	NotFound bool
}

func LoadDetail(c *Client, id int64) (*DetailView, error) {
	video, err := c.Video(id)
	if err != nil {
		if IsNotFound(err) {
			return &DetailView{NotFound: true}, nil
		}
		return nil, err
	}
	return &DetailView{Video: video}, nil
}

// ErrNotAuthenticated signals the upload page would redirect to login.
var ErrNotAuthenticated = errors.New("not authenticated")

// SubmitUpload validates presence of file, title and category before
// submitting, mirroring the upload form's client-side checks. On success it
// returns the detail path of the new record to redirect to.
func SubmitUpload(c *Client, token string, input UploadInput) (string, error) {
	if token == "" {
		return "", ErrNotAuthenticated
	}
	if input.Content == nil {
		return "", errors.New("please select a video file")
	}
	if strings.TrimSpace(input.Title) == "" {
		return "", errors.New("please enter a title")
	}
	if input.Category == "" {
		return "", errors.New("please choose a category")
	}

	video, err := c.UploadVideo(token, input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/videos/%d", video.ID), nil
}
