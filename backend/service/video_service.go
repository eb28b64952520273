package service

import (
	"fmt"
	"mime/multipart"
	"strings"

	apierrors "optiwave/backend/common/errors"
	"optiwave/backend/library/storage"
	"optiwave/backend/model"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

// UploadError is a rejected upload with a stable error code from the
// backend/common/errors taxonomy.
type UploadError struct {
	Code    string
	Message string
	// Data is echoed to the caller, e.g. the category allow-list.
	Data interface{}
}

func (e *UploadError) Error() string {
	return e.Message
}

func validationError(msg string) *UploadError {
	return &UploadError{Code: apierrors.ErrValidation, Message: msg}
}

// UploadRequest carries the metadata fields of a multipart upload.
type UploadRequest struct {
	Title       string
	Description string
	Category    string
	Tags        string
}

// VideoService owns the upload data path: validation, binary persistence and
// the metadata insert that commits an upload.
type VideoService struct {
	store *storage.LocalStore
}

// NewVideoService constructs the service around an upload store.
func NewVideoService(store *storage.LocalStore) *VideoService {
	return &VideoService{store: store}
}

// Store exposes the underlying upload store.
func (s *VideoService) Store() *storage.LocalStore {
	return s.store
}

// validateUpload checks every field and the declared file properties before
// anything is written.
func validateUpload(req UploadRequest, file *multipart.FileHeader) *UploadError {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Category) == "" || file == nil {
		return validationError("Title, category, and video file are required")
	}
	if len(req.Title) > maxTitleLength {
		return validationError(fmt.Sprintf("Title must be at most %d characters", maxTitleLength))
	}
	if len(req.Description) > maxDescriptionLength {
		return validationError(fmt.Sprintf("Description must be at most %d characters", maxDescriptionLength))
	}
	if !model.IsAllowedCategory(req.Category) {
		uploadErr := validationError("Invalid category. Only programming and educational tech content is allowed.")
		uploadErr.Data = model.AllowedCategories
		return uploadErr
	}
	mimeType := file.Header.Get("Content-Type")
	if !storage.IsAllowedMimeType(mimeType) {
		return &UploadError{Code: apierrors.ErrUnsupportedMedia, Message: "Only video files are allowed"}
	}
	if file.Size > storage.MaxUploadBytes {
		return &UploadError{Code: apierrors.ErrPayloadTooLarge, Message: "Video file exceeds the 100MB limit"}
	}
	return nil
}

// UploadVideo validates the request, writes the binary to the store and
// inserts the metadata record. The insert is the commit point: when it
// fails, the stored binary is removed so no file exists without a record.
func (s *VideoService) UploadVideo(userID int64, req UploadRequest, file *multipart.FileHeader) (*model.Video, error) {
	if uploadErr := validateUpload(req, file); uploadErr != nil {
		return nil, uploadErr
	}

	storedName, err := s.store.Save(file)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	video := &model.Video{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Filename:     storedName,
		OriginalName: file.Filename,
		MimeType:     file.Header.Get("Content-Type"),
		Size:         file.Size,
		Category:     req.Category,
		Tags:         req.Tags,
		UserID:       userID,
	}
	if err := model.CreateVideo(video); err != nil {
		if removeErr := s.store.Remove(storedName); removeErr != nil {
			return nil, fmt.Errorf("save video record: %w (orphaned file %s: %v)", err, storedName, removeErr)
		}
		return nil, fmt.Errorf("save video record: %w", err)
	}
	return video, nil
}
