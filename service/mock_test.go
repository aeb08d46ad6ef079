package service

import (
	"context"

	"github.com/Aashish23092/ocr-text-extraction/client"
	"github.com/stretchr/testify/mock"
)

type mockFactory struct {
	mock.Mock
}

func (m *mockFactory) New(ctx context.Context) (client.Annotator, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).(client.Annotator)
	return a, args.Error(1)
}

type mockAnnotator struct {
	mock.Mock
}

func (m *mockAnnotator) DetectText(ctx context.Context, image []byte) (*client.Detection, error) {
	args := m.Called(ctx, image)
	d, _ := args.Get(0).(*client.Detection)
	return d, args.Error(1)
}

func (m *mockAnnotator) Close() error {
	return m.Called().Error(0)
}
