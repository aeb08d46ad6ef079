package client

import "context"

// Detection is the outcome of a text-detection call that reached the provider.
type Detection struct {
	// Text is the aggregated full-text annotation, empty when nothing was found.
	Text string
	// ErrorMessage is set when the provider reports a failure inside a
	// successful response.
	ErrorMessage string
}

// Annotator runs OCR on raw image bytes. A returned error means the call
// itself failed (transport, auth, deadline).
type Annotator interface {
	DetectText(ctx context.Context, image []byte) (*Detection, error)
	Close() error
}

// Factory constructs an Annotator. Construction may fail on missing
// credentials or bad configuration.
type Factory interface {
	New(ctx context.Context) (Annotator, error)
}

// FactoryFunc adapts a plain function to Factory.
type FactoryFunc func(ctx context.Context) (Annotator, error)

func (f FactoryFunc) New(ctx context.Context) (Annotator, error) {
	return f(ctx)
}
