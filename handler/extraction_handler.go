package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Aashish23092/ocr-text-extraction/dto"
	"github.com/Aashish23092/ocr-text-extraction/middleware"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileField is the multipart form field carrying the image.
const FileField = "file"

// TextExtractor is the service the handler dispatches validated uploads to.
type TextExtractor interface {
	ExtractText(ctx context.Context, start time.Time, img *dto.UploadedImage) (*dto.ExtractionResult, error)
}

type ExtractionHandler struct {
	extractor TextExtractor
	log       *zap.Logger
}

func NewExtractionHandler(extractor TextExtractor, log *zap.Logger) *ExtractionHandler {
	return &ExtractionHandler{
		extractor: extractor,
		log:       log,
	}
}

// ExtractText handles POST /extract-text
func (h *ExtractionHandler) ExtractText(c *gin.Context) {
	start := time.Now()

	img, err := h.readUpload(c)
	if err != nil {
		h.sendError(c, err)
		return
	}

	result, err := h.extractor.ExtractText(c.Request.Context(), start, img)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.log.Info("Text extracted",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("filename", img.Filename),
		zap.Int("bytes", len(img.Bytes)),
		zap.Int("text_length", len(result.Text)),
		zap.Float64("time_ms", result.Time))

	c.JSON(http.StatusOK, result)
}

// readUpload checks the declared type first, then reads the body and checks it
// is non-empty.
func (h *ExtractionHandler) readUpload(c *gin.Context) (*dto.UploadedImage, error) {
	header, err := c.FormFile(FileField)
	if err != nil {
		return nil, dto.NewError(dto.MissingFile, err)
	}

	img := &dto.UploadedImage{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
	if err := dto.ValidateFormat(img.ContentType); err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	img.Bytes, err = io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	if err := img.Validate(); err != nil {
		return nil, err
	}

	h.log.Debug("Upload accepted",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("declared_type", img.ContentType),
		zap.String("detected_type", mimetype.Detect(img.Bytes).String()),
		zap.Int("bytes", len(img.Bytes)))

	return img, nil
}

// Root handles GET /
func (h *ExtractionHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Hello World"})
}

// Health handles GET /health
func (h *ExtractionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "healthy",
		Service: "Text Extraction",
	})
}

// sendError is the single place failures are turned into responses.
func (h *ExtractionHandler) sendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	detail := "Internal server error."
	kind := "unknown"

	var extErr *dto.ExtractionError
	if errors.As(err, &extErr) {
		status = extErr.Status()
		detail = extErr.Detail()
		kind = extErr.Kind.String()
	}

	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("kind", kind),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("Text extraction failed", fields...)
	} else {
		h.log.Warn("Text extraction rejected", fields...)
	}

	c.JSON(status, dto.ErrorResponse{Detail: detail})
}
