package model

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"optiwave/backend/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	common.SQLitePath = filepath.Join(t.TempDir(), "video_test.db")
	common.RedisEnabled = false

	require.NoError(t, InitDB())

	t.Cleanup(func() {
		common.SQLitePath = originalSQLitePath
	})
}

func createTestUser(t *testing.T, email, name string) *User {
	t.Helper()
	user := &User{
		Email:       email,
		Password:    "testpass",
		DisplayName: name,
		Role:        common.RoleCommonUser,
		Status:      common.UserStatusEnabled,
	}
	require.NoError(t, user.Insert())
	return user
}

func createTestVideo(t *testing.T, userID int64, title, category, tags string, views int64, featured bool) *Video {
	t.Helper()
	video := &Video{
		Title:        title,
		Description:  "about " + title,
		Filename:     fmt.Sprintf("video-%d-%s.mp4", time.Now().UnixNano(), title),
		OriginalName: title + ".mp4",
		MimeType:     "video/mp4",
		Size:         1024,
		Category:     category,
		Tags:         tags,
		UserID:       userID,
		Views:        views,
		Featured:     featured,
	}
	require.NoError(t, CreateVideo(video))
	return video
}

func TestAllowedCategories(t *testing.T) {
	assert.Equal(t, "programming", AllowedCategories[0])
	assert.Equal(t, "tech-education", AllowedCategories[len(AllowedCategories)-1])
	assert.Len(t, AllowedCategories, 9)

	assert.True(t, IsAllowedCategory("ai"))
	assert.True(t, IsAllowedCategory("web-development"))
	assert.False(t, IsAllowedCategory("cooking"))
	assert.False(t, IsAllowedCategory(""))
	assert.False(t, IsAllowedCategory("Programming"))
}

func TestListVideosPagination(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "uploader@example.com", "Uploader")

	ids := make([]int64, 0, 12)
	for i := 1; i <= 12; i++ {
		v := createTestVideo(t, user.ID, fmt.Sprintf("video %02d", i), "programming", "", 0, false)
		ids = append(ids, v.ID)
	}

	// Newest first: page 2 with limit 5 holds records 6-10 of the ordered set.
	videos, total, err := ListVideos(2, 5, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, videos, 5)
	for i, v := range videos {
		assert.Equal(t, ids[len(ids)-6-i], v.ID)
	}

	// A short final page
	videos, _, err = ListVideos(3, 5, "", "")
	require.NoError(t, err)
	assert.Len(t, videos, 2)

	// Past the end
	videos, _, err = ListVideos(4, 5, "", "")
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestListVideosSearch(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "uploader@example.com", "Uploader")

	inTitle := createTestVideo(t, user.ID, "Intro to Rust", "programming", "", 0, false)
	inTags := createTestVideo(t, user.ID, "Systems programming", "programming", "rust,low-level", 0, false)
	other := createTestVideo(t, user.ID, "Cooking with Python", "programming", "python", 0, false)

	videos, total, err := ListVideos(1, 10, "", "rust")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	got := make(map[int64]bool)
	for _, v := range videos {
		got[v.ID] = true
	}
	assert.True(t, got[inTitle.ID])
	assert.True(t, got[inTags.ID])
	assert.False(t, got[other.ID])

	// Case-insensitive
	_, total, err = ListVideos(1, 10, "", "RUST")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestListVideosCategoryFilter(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "uploader@example.com", "Uploader")

	createTestVideo(t, user.ID, "Go basics", "programming", "", 0, false)
	createTestVideo(t, user.ID, "Neural nets", "ai", "", 0, false)

	videos, total, err := ListVideos(1, 10, "ai", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, videos, 1)
	assert.Equal(t, "Neural nets", videos[0].Title)

	// Exact match only
	_, total, err = ListVideos(1, 10, "a", "")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestListVideosCategoryAndSearch(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "uploader@example.com", "Uploader")

	match := createTestVideo(t, user.ID, "Rust for the Web", "web-development", "rust", 0, false)
	createTestVideo(t, user.ID, "Intro to Rust", "programming", "rust", 0, false)
	createTestVideo(t, user.ID, "CSS Basics", "web-development", "css", 0, false)

	// Both filters apply at once
	videos, total, err := ListVideos(1, 10, "web-development", "rust")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, videos, 1)
	assert.Equal(t, match.ID, videos[0].ID)
}

func TestFeaturedVideos(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "uploader@example.com", "Uploader")

	createTestVideo(t, user.ID, "plain", "programming", "", 100, false)
	low := createTestVideo(t, user.ID, "featured low", "programming", "", 5, true)
	high := createTestVideo(t, user.ID, "featured high", "programming", "", 50, true)

	videos, err := FeaturedVideos()
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, high.ID, videos[0].ID)
	assert.Equal(t, low.ID, videos[1].ID)
}

func TestTrendingVideos(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "uploader@example.com", "Uploader")

	quiet := createTestVideo(t, user.ID, "quiet", "programming", "", 1, false)
	popular := createTestVideo(t, user.ID, "popular", "programming", "", 99, false)

	videos, err := TrendingVideos(time.Now())
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, popular.ID, videos[0].ID)
	assert.Equal(t, quiet.ID, videos[1].ID)

	// Records older than the seven-day window are excluded: querying as of a
	// future instant pushes everything out of the window.
	videos, err = TrendingVideos(time.Now().Add(8 * 24 * time.Hour))
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func backdateVideo(t *testing.T, id int64, createdAt time.Time) {
	t.Helper()
	_, err := dbAdapter.Exec(context.Background(), "UPDATE videos SET created_at = ? WHERE id = ?", createdAt, id)
	require.NoError(t, err)
}

func TestTrendingWindowBoundary(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "uploader@example.com", "Uploader")
	now := time.Now()

	edge := createTestVideo(t, user.ID, "on the edge", "programming", "", 0, false)
	stale := createTestVideo(t, user.ID, "just outside", "programming", "", 0, false)

	// The lower bound is inclusive: exactly seven days old still trends.
	backdateVideo(t, edge.ID, now.Add(-common.TrendingWindow))
	backdateVideo(t, stale.ID, now.Add(-common.TrendingWindow-time.Minute))

	videos, err := TrendingVideos(now)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, edge.ID, videos[0].ID)
}

func TestIncrementViews(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "uploader@example.com", "Uploader")
	video := createTestVideo(t, user.ID, "counted", "programming", "", 0, false)

	assert.Zero(t, video.Views)
	for i := int64(1); i <= 3; i++ {
		got, err := GetVideoByID(video.ID)
		require.NoError(t, err)
		require.NoError(t, IncrementViews(got))
		assert.Equal(t, i, got.Views)
	}

	got, err := GetVideoByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Views)
}

func TestGetVideoByIDFillsUploaderName(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com", "Alice")
	video := createTestVideo(t, user.ID, "named", "programming", "", 0, false)

	got, err := GetVideoByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.UploaderName)
}

func TestGetVideoByIDNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := GetVideoByID(404404)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = GetVideoByID(-1)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}
