package utils

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	id1, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.Len(t, id1, 26)

	id2, err := u.NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestDecodeBase64Image(t *testing.T) {
	u := New()
	raw := []byte{0x01, 0x02, 0x03, 0xff}
	encoded := base64.StdEncoding.EncodeToString(raw)

	got, err := u.DecodeBase64Image(encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = u.DecodeBase64Image("data:image/jpeg;base64," + encoded)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = u.DecodeBase64Image("%%%not-base64%%%")
	assert.Error(t, err)
}

func TestDecodeFrame(t *testing.T) {
	u := New()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))
	decoded, format, err := u.DecodeFrame(pngBuf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	var jpegBuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpegBuf, img, nil))
	decoded, format, err = u.DecodeFrame(jpegBuf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	_, _, err = u.DecodeFrame([]byte("garbage"))
	assert.Error(t, err)
}
