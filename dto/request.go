package dto

import "fmt"

// UploadedImage is the file part of an extraction request.
type UploadedImage struct {
	Filename    string
	ContentType string
	Bytes       []byte
}

// acceptedContentTypes are matched literally; no wildcard or parameter handling.
var acceptedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
}

// ValidateFormat reports an InvalidFormat error unless contentType is a JPEG MIME string.
func ValidateFormat(contentType string) error {
	if _, ok := acceptedContentTypes[contentType]; !ok {
		return NewError(InvalidFormat, fmt.Errorf("unsupported content type %q", contentType))
	}
	return nil
}

// Validate checks the declared format and that the body is non-empty.
func (img *UploadedImage) Validate() error {
	if err := ValidateFormat(img.ContentType); err != nil {
		return err
	}
	if len(img.Bytes) == 0 {
		return NewError(EmptyFile, nil)
	}
	return nil
}
