package model

import (
	"context"
	"errors"
	"time"

	"optiwave/backend/common"

	"github.com/burugo/thing"
	thingCommon "github.com/burugo/thing/common"
)

// ErrVideoNotFound marks a lookup for an id with no record.
var ErrVideoNotFound = errors.New("video not found")

// AllowedCategories is the closed set of acceptable category values, in
// declaration order. The catalog only hosts programming and tech education
// content.
var AllowedCategories = []string{
	"programming",
	"ai",
	"machine-learning",
	"web-development",
	"mobile-development",
	"data-science",
	"coding-tutorials",
	"software-engineering",
	"tech-education",
}

// IsAllowedCategory reports whether category is in AllowedCategories.
func IsAllowedCategory(category string) bool {
	for _, c := range AllowedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Video represents one uploaded video's metadata. The stored filename is
// generated by the server and is the sole public reference to the binary on
// disk; the client-supplied name is kept only as original_name.
type Video struct {
	thing.BaseModel
	Title        string `db:"title" json:"title"`
	Description  string `db:"description" json:"description"`
	Filename     string `db:"filename,unique" json:"filename"`
	OriginalName string `db:"original_name" json:"original_name"`
	MimeType     string `db:"mime_type" json:"mimetype"`
	Size         int64  `db:"size" json:"size"`
	Category     string `db:"category,index" json:"category"`
	Tags         string `db:"tags" json:"tags"`
	UserID       int64  `db:"user_id,index" json:"user_id"`
	Views        int64  `db:"views" json:"views"`
	Featured     bool   `db:"featured" json:"featured"`

	// UploaderName mirrors the uploader's display name; filled on read, never
	// persisted.
	UploaderName string `db:"-" json:"uploader_name,omitempty"`
}

func (v *Video) TableName() string {
	return "videos"
}

var VideoDB *thing.Thing[*Video]

// VideoInit initializes VideoDB during InitDB.
func VideoInit() error {
	var err error
	VideoDB, err = thing.Use[*Video]()
	if err != nil {
		return err
	}
	return nil
}

// ListVideos returns one page of the catalog ordered by creation time
// descending, plus the total count of matching records. Category filters by
// exact match; search matches title, description or tags. SQLite LIKE is
// case-insensitive for ASCII, which matches the search contract.
//
// The filters run as one raw statement: the chainable builder keeps only the
// last Where and binds a single arg per AND condition, so it cannot carry the
// three-placeholder search group or compose category with search.
func ListVideos(page, limit int, category, search string) ([]*Video, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = common.ItemsPerPage
	}

	where := "deleted = ?"
	args := []interface{}{false}
	if category != "" {
		where += " AND category = ?"
		args = append(args, category)
	}
	if search != "" {
		where += " AND (title LIKE ? OR description LIKE ? OR tags LIKE ?)"
		like := "%" + search + "%"
		args = append(args, like, like, like)
	}

	ctx := context.Background()
	total, err := dbAdapter.GetCount(ctx, "videos", where, args)
	if err != nil {
		return nil, 0, err
	}

	var videos []*Video
	query := "SELECT * FROM videos WHERE " + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	if err := dbAdapter.Select(ctx, &videos, query, append(args, limit, (page-1)*limit)...); err != nil {
		return nil, 0, err
	}
	if err := fillUploaderNames(videos); err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// FeaturedVideos returns featured records, most viewed first.
func FeaturedVideos() ([]*Video, error) {
	videos, err := VideoDB.Where("featured = ?", true).
		Order("views DESC, created_at DESC").
		Fetch(0, common.MaxFeaturedVideos)
	if err != nil {
		return nil, err
	}
	if err := fillUploaderNames(videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// TrendingVideos returns records created within the trailing seven-day
// window ending at now, most viewed first. The lower bound is inclusive.
func TrendingVideos(now time.Time) ([]*Video, error) {
	since := now.Add(-common.TrendingWindow)
	videos, err := VideoDB.Where("created_at >= ?", since).
		Order("views DESC, created_at DESC").
		Fetch(0, common.MaxTrendingVideos)
	if err != nil {
		return nil, err
	}
	if err := fillUploaderNames(videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// GetVideoByID fetches one record with its uploader's display name.
// A missing id yields ErrVideoNotFound; anything else is a store failure.
func GetVideoByID(id int64) (*Video, error) {
	if id <= 0 {
		return nil, ErrVideoNotFound
	}
	video, err := VideoDB.ByID(id)
	if err != nil {
		if errors.Is(err, thingCommon.ErrNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if err := fillUploaderNames([]*Video{video}); err != nil {
		return nil, err
	}
	return video, nil
}

// IncrementViews bumps the view count by exactly 1. The update is not
// synchronized beyond the store's statement-level atomicity; lost updates
// under heavy concurrent reads are accepted.
func IncrementViews(video *Video) error {
	video.Views++
	return VideoDB.Save(video)
}

// SetFeatured updates the featured flag.
func SetFeatured(video *Video, featured bool) error {
	video.Featured = featured
	return VideoDB.Save(video)
}

// CreateVideo persists a new record. The insert is the commit point of an
// upload: callers must remove the stored binary when it fails.
func CreateVideo(video *Video) error {
	return VideoDB.Save(video)
}

func fillUploaderNames(videos []*Video) error {
	names := make(map[int64]string)
	for _, v := range videos {
		if _, ok := names[v.UserID]; ok {
			continue
		}
		user, err := UserDB.ByID(v.UserID)
		if err != nil {
			// Orphaned record; leave the name empty rather than failing the read.
			names[v.UserID] = ""
			continue
		}
		names[v.UserID] = user.DisplayName
	}
	for _, v := range videos {
		v.UploaderName = names[v.UserID]
	}
	return nil
}
