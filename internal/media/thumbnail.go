package media

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// NormalizeThumbnail decodes an uploaded course image, applies EXIF
// orientation, downsizes it to at most maxWidth pixels wide and re-encodes
// it as JPEG. Images already narrower than maxWidth keep their size.
func NormalizeThumbnail(src io.Reader, maxWidth int) (*bytes.Reader, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("invalid image: %w", err)
	}

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}
