package files

import (
	"errors"
	"io"
	"net/http"

	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/domain/media"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Files          FileStore
	URLs           media.URLBuilder
	MaxUploadBytes int64
}

type UploadResponse struct {
	FilePath          string `json:"filePath"`
	FileURL           string `json:"fileUrl"`
	MimeType          string `json:"mimeType"`
	FileSize          int64  `json:"fileSize"`
	FileSizeFormatted string `json:"fileSizeFormatted"`
}

func (h *Handler) service() *Service {
	return NewService(h.Files, h.MaxUploadBytes)
}

// POST /api/admin/files/upload
func (h *Handler) Upload(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+1<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			response.Fail(c, apperr.PayloadTooLarge("File size exceeds maximum allowed size"))
			return
		}
		response.Fail(c, apperr.FileUpload("File is required", err))
		return
	}
	kind, ok := ParseKind(c.PostForm("fileType"))
	if !ok {
		response.Fail(c, apperr.Field("fileType", "File type must be one of IMAGE, DOCUMENT, OTHER"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Fail(c, apperr.FileUpload("Failed to read file", err))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.Fail(c, apperr.FileUpload("Failed to read file", err))
		return
	}

	stored, err := h.service().Upload(c.Request.Context(), kind, data)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "File uploaded successfully", UploadResponse{
		FilePath:          stored.Path,
		FileURL:           h.URLs.URL(stored.Path),
		MimeType:          stored.MimeType,
		FileSize:          stored.Size,
		FileSizeFormatted: media.FormatSize(&stored.Size),
	})
}

// DELETE /api/admin/files?filePath=
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service().Delete(c.Request.Context(), c.Query("filePath")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OKMessage(c, "File deleted successfully", nil)
}
