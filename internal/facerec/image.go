package facerec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

var ErrInvalidImageData = errors.New("invalid image data")

// DecodeImageData decodes the reference image the capture page submits, a
// base64 data URL such as "data:image/png;base64,...". Raw base64 without
// the data URL prefix is accepted too.
func DecodeImageData(s string) (image.Image, error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		_, after, found := strings.Cut(s, ",")
		if !found {
			return nil, fmt.Errorf("%w: malformed data URL", ErrInvalidImageData)
		}
		payload = after
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageData, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageData, err)
	}
	return img, nil
}
