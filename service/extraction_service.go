package service

import (
	"context"
	"errors"
	"time"

	"github.com/Aashish23092/ocr-text-extraction/client"
	"github.com/Aashish23092/ocr-text-extraction/dto"
	"go.uber.org/zap"
)

// ExtractionService runs text detection for one validated upload. It holds no
// per-request state; a fresh provider client is built for every call.
type ExtractionService struct {
	factory client.Factory
	timeout time.Duration
	log     *zap.Logger
}

func NewExtractionService(factory client.Factory, timeout time.Duration, log *zap.Logger) *ExtractionService {
	return &ExtractionService{
		factory: factory,
		timeout: timeout,
		log:     log,
	}
}

// ExtractText calls the OCR provider and builds the response envelope.
// start is the moment the request began; the reported time covers the whole
// handler, not just the upstream call.
func (s *ExtractionService) ExtractText(ctx context.Context, start time.Time, img *dto.UploadedImage) (*dto.ExtractionResult, error) {
	annotator, err := s.factory.New(ctx)
	if err != nil {
		return nil, dto.NewError(dto.ClientInitError, err)
	}
	defer func() {
		if cerr := annotator.Close(); cerr != nil {
			s.log.Warn("Failed to close Vision API client", zap.Error(cerr))
		}
	}()

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	detection, err := annotator.DetectText(callCtx, img.Bytes)
	if err != nil {
		return nil, dto.NewError(dto.UpstreamCallError, err)
	}

	if detection.ErrorMessage != "" {
		return nil, dto.NewError(dto.UpstreamLogicalError, errors.New(detection.ErrorMessage))
	}

	return &dto.ExtractionResult{
		Success: true,
		Time:    elapsedMillis(start),
		Text:    detection.Text,
	}, nil
}

// elapsedMillis uses the monotonic reading carried by start.
func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
