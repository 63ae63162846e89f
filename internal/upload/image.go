// Package upload validates files received in multipart requests.
package upload

import (
	"fmt"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/lshigami/redaction/internal/apperrors"
)

// ImageTypes are the accepted image MIME types with their display names.
var ImageTypes = []struct {
	MIME string
	Name string
}{
	{"image/jpeg", "jpeg"},
	{"image/bmp", "bmp"},
	{"image/png", "png"},
}

// ValidateImage sniffs the uploaded content and returns its MIME type.
// A nil header is valid and yields "".
func ValidateImage(field string, fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if fh == nil {
		return "", nil
	}
	attr := apperrors.Attribute(field)

	if maxBytes > 0 && fh.Size > maxBytes {
		return "", apperrors.NewValidationError(field,
			fmt.Sprintf("The %s may not be greater than %d kilobytes.", attr, maxBytes/1024))
	}

	f, err := fh.Open()
	if err != nil {
		return "", apperrors.NewValidationError(field, fmt.Sprintf("The %s failed to upload.", attr))
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", apperrors.NewValidationError(field, fmt.Sprintf("The %s failed to upload.", attr))
	}

	for _, t := range ImageTypes {
		if mtype.Is(t.MIME) {
			return t.MIME, nil
		}
	}
	return "", apperrors.NewValidationError(field, fmt.Sprintf("The %s must be a file of type: %s.", attr, typeList()))
}

func typeList() string {
	s := ""
	for i, t := range ImageTypes {
		if i > 0 {
			s += ", "
		}
		s += t.Name
	}
	return s
}
