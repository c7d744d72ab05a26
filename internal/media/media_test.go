package media_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"learnhub/internal/media"
	"learnhub/internal/media/mediatest"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBulkDelete_CountsFailuresWithoutAborting(t *testing.T) {
	store := mediatest.New()
	store.FailDelete("videos/b", errors.New("host down"))

	targets := []media.Target{
		{PublicID: "videos/a", Kind: media.KindVideo},
		{PublicID: "videos/b", Kind: media.KindVideo},
		{PublicID: "", Kind: media.KindImage},
		{PublicID: "thumbs/c", Kind: media.KindImage},
	}

	result := media.BulkDelete(context.Background(), store, targets, 2, zap.NewNop())

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "videos/b")
	assert.Equal(t, []string{"thumbs/c", "videos/a"}, store.Deleted())
}

func TestBulkDelete_Empty(t *testing.T) {
	result := media.BulkDelete(context.Background(), mediatest.New(), nil, 4, zap.NewNop())
	assert.Equal(t, media.BulkResult{}, result)
}

func TestNormalizeThumbnail_DownsizesWideImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		src.Set(x, 10, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := media.NormalizeThumbnail(&buf, 100)
	require.NoError(t, err)

	img, err := imaging.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestNormalizeThumbnail_KeepsNarrowImages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 80, 60))))

	out, err := media.NormalizeThumbnail(&buf, 100)
	require.NoError(t, err)

	img, err := imaging.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
}

func TestNormalizeThumbnail_RejectsNonImages(t *testing.T) {
	_, err := media.NormalizeThumbnail(bytes.NewReader([]byte("not an image")), 100)
	assert.Error(t, err)
}

func TestDisabledStorage(t *testing.T) {
	var s media.Storage = media.Disabled{}
	_, err := s.Upload(context.Background(), bytes.NewReader(nil), media.UploadOptions{})
	assert.ErrorIs(t, err, media.ErrNotConfigured)
}
