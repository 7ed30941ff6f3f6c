package handler

import (
	"errors"
	"io"
	"net/http"

	"event-manager/internal/domains/media/model"
	"event-manager/internal/domains/media/service"
	"event-manager/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// multipart framing allowance on top of the image limit
const formOverhead = 64 * 1024

type Handler struct {
	service service.ServiceInterface
	maxSize int64
}

func NewHandler(svc service.ServiceInterface, maxSize int64) *Handler {
	return &Handler{service: svc, maxSize: maxSize}
}

// UploadImage - POST /api/v1/uploads/images (multipart field "file")
func (h *Handler) UploadImage(c *gin.Context) {
	if !h.service.Enabled() {
		h.handleError(c, model.ErrUploadsDisabled)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+formOverhead)

	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.handleError(c, model.NewImageTooLarge(h.maxSize))
			return
		}
		response.BadRequest(c, "multipart field \"file\" is required")
		return
	}
	if file.Size > h.maxSize {
		h.handleError(c, model.NewImageTooLarge(h.maxSize))
		return
	}

	f, err := file.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxSize+1))
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}

	url, err := h.service.UploadEventImage(c.Request.Context(), data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.UploadImageResponse{URL: url})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status, code, message := model.MapErrorToHTTP(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("image upload failed")
	}
	response.ErrorResponse(c, status, code, message)
}
