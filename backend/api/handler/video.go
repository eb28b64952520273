package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"optiwave/backend/common"
	apierrors "optiwave/backend/common/errors"
	"optiwave/backend/model"
	"optiwave/backend/service"

	"github.com/gin-gonic/gin"
)

// VideoAPI carries the video endpoints' dependencies. Handlers are methods
// so the upload store is injected at startup instead of living in a global.
type VideoAPI struct {
	svc *service.VideoService
}

// NewVideoAPI constructs the video handler set.
func NewVideoAPI(svc *service.VideoService) *VideoAPI {
	return &VideoAPI{svc: svc}
}

// VideoListResponse is the wire shape of a catalog page.
type VideoListResponse struct {
	Videos []*model.Video `json:"videos"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Total  int64          `json:"total"`
}

// Upload accepts a multipart video upload from an authenticated user.
func (api *VideoAPI) Upload(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		common.RespErrorStr(c, http.StatusUnauthorized, "user not logged in")
		return
	}
	id, ok := userID.(int64)
	if !ok {
		common.RespErrorStr(c, http.StatusInternalServerError, "invalid user_id type")
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		file = nil
	}
	req := service.UploadRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Tags:        c.PostForm("tags"),
	}

	video, err := api.svc.UploadVideo(id, req, file)
	if err != nil {
		var uploadErr *service.UploadError
		if errors.As(err, &uploadErr) {
			status := http.StatusBadRequest
			switch uploadErr.Code {
			case apierrors.ErrUnsupportedMedia:
				status = http.StatusUnsupportedMediaType
			case apierrors.ErrPayloadTooLarge:
				status = http.StatusRequestEntityTooLarge
			}
			if uploadErr.Data != nil {
				common.RespErrorWithData(c, status, uploadErr.Message, gin.H{"allowed_categories": uploadErr.Data})
				return
			}
			common.RespErrorStr(c, status, uploadErr.Message)
			return
		}
		common.SysError("upload failed: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "Server error during upload")
		return
	}

	common.RespCreated(c, "Video uploaded successfully", video)
}

// List answers paginated catalog queries with optional category and search
// filters.
func (api *VideoAPI) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = common.ItemsPerPage
	}
	category := c.Query("category")
	search := c.Query("search")

	videos, total, err := model.ListVideos(page, limit, category, search)
	if err != nil {
		common.SysError("failed to list videos: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "Error fetching videos")
		return
	}

	common.RespSuccess(c, VideoListResponse{
		Videos: videos,
		Page:   page,
		Limit:  limit,
		Total:  total,
	})
}

// Featured returns featured records, most viewed first.
func (api *VideoAPI) Featured(c *gin.Context) {
	videos, err := model.FeaturedVideos()
	if err != nil {
		common.SysError("failed to fetch featured videos: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "Error fetching featured videos")
		return
	}
	common.RespSuccess(c, videos)
}

// Trending returns records created within the last seven days, most viewed
// first.
func (api *VideoAPI) Trending(c *gin.Context) {
	videos, err := model.TrendingVideos(time.Now())
	if err != nil {
		common.SysError("failed to fetch trending videos: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "Error fetching trending videos")
		return
	}
	common.RespSuccess(c, videos)
}

// GetByID returns one record and bumps its view count as a side effect.
// Every fetch counts; revisits increment again.
func (api *VideoAPI) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid video id")
		return
	}

	video, err := model.GetVideoByID(id)
	if err != nil {
		if errors.Is(err, model.ErrVideoNotFound) {
			common.RespErrorStr(c, http.StatusNotFound, "Video not found")
			return
		}
		common.SysError("failed to fetch video: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "Error fetching video")
		return
	}

	if err := model.IncrementViews(video); err != nil {
		common.SysError("failed to increment views: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "Error fetching video")
		return
	}

	common.RespSuccess(c, video)
}

type featureRequestPayload struct {
	Featured bool `json:"featured"`
}

// SetFeatured flips a record's featured flag. Admin only.
func (api *VideoAPI) SetFeatured(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid video id")
		return
	}
	var requestPayload featureRequestPayload
	if err := c.ShouldBindJSON(&requestPayload); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	video, err := model.GetVideoByID(id)
	if err != nil {
		if errors.Is(err, model.ErrVideoNotFound) {
			common.RespErrorStr(c, http.StatusNotFound, "Video not found")
			return
		}
		common.SysError("failed to fetch video: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "Error fetching video")
		return
	}
	if err := model.SetFeatured(video, requestPayload.Featured); err != nil {
		common.SysError("failed to update featured flag: " + err.Error())
		common.RespErrorStr(c, http.StatusInternalServerError, "Error updating video")
		return
	}
	common.RespSuccess(c, video)
}

// Categories returns the fixed allow-list in declaration order.
func (api *VideoAPI) Categories(c *gin.Context) {
	common.RespSuccess(c, model.AllowedCategories)
}
