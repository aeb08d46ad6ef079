package client

import (
	"context"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// VisionConfig holds the Google Cloud Vision connection settings.
// Credentials come from the ambient environment (GOOGLE_APPLICATION_CREDENTIALS).
type VisionConfig struct {
	ProjectID string
	Endpoint  string
}

// VisionFactory creates a new Cloud Vision client for every request.
type VisionFactory struct {
	cfg  VisionConfig
	opts []option.ClientOption
	log  *zap.Logger
}

func NewVisionFactory(cfg VisionConfig, log *zap.Logger, opts ...option.ClientOption) *VisionFactory {
	return &VisionFactory{
		cfg:  cfg,
		opts: opts,
		log:  log,
	}
}

func (f *VisionFactory) New(ctx context.Context) (Annotator, error) {
	opts := append([]option.ClientOption{}, f.opts...)
	if f.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(f.cfg.Endpoint))
	}
	if f.cfg.ProjectID != "" {
		opts = append(opts, option.WithQuotaProject(f.cfg.ProjectID))
	}

	c, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("new image annotator client: %w", err)
	}

	f.log.Debug("Vision API client created", zap.String("endpoint", f.cfg.Endpoint))
	return &VisionClient{client: c}, nil
}

// VisionClient runs TEXT_DETECTION against Google Cloud Vision.
type VisionClient struct {
	client *vision.ImageAnnotatorClient
}

func (vc *VisionClient) DetectText(ctx context.Context, image []byte) (*Detection, error) {
	resp, err := vc.client.BatchAnnotateImages(ctx, newTextDetectionRequest(image))
	if err != nil {
		return nil, err
	}
	return detectionFromResponse(resp), nil
}

func (vc *VisionClient) Close() error {
	return vc.client.Close()
}

func newTextDetectionRequest(image []byte) *visionpb.BatchAnnotateImagesRequest {
	return &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
			},
		},
	}
}

// detectionFromResponse reads the single image response. Only the aggregated
// full-text annotation is used; per-block annotations are ignored.
func detectionFromResponse(resp *visionpb.BatchAnnotateImagesResponse) *Detection {
	responses := resp.GetResponses()
	if len(responses) == 0 {
		return &Detection{}
	}

	r := responses[0]
	return &Detection{
		Text:         r.GetFullTextAnnotation().GetText(),
		ErrorMessage: r.GetError().GetMessage(),
	}
}
