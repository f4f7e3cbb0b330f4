package filetype_test

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indigo-retail/pos-api/internal/filetype"
)

var (
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0x01}
	pngHeader  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
	gifHeader  = []byte("GIF89a\x01\x00\x01\x00\x00\x00")
	webpHeader = []byte("RIFF\x24\x00\x00\x00WEBP")
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{"jpeg", jpegHeader, filetype.MediaTypeJPEG},
		{"png", pngHeader, filetype.MediaTypePNG},
		{"gif", gifHeader, filetype.MediaTypeGIF},
		{"webp", webpHeader, filetype.MediaTypeWebP},
		{"plain text", []byte("hello world, nothing"), ""},
		{"pdf", []byte("%PDF-1.7 something"), ""},
		{"riff but not webp", []byte("RIFF\x24\x00\x00\x00WAVE"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filetype.Sniff(tt.data))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		filename string
		expected string
		wantErr  bool
	}{
		{"png with png extension", pngHeader, "image.png", filetype.MediaTypePNG, false},
		{"jpeg with jpg extension", jpegHeader, "photo.jpg", filetype.MediaTypeJPEG, false},
		{"jpeg with jpeg extension", jpegHeader, "photo.jpeg", filetype.MediaTypeJPEG, false},
		{"gif with gif extension", gifHeader, "anim.GIF", filetype.MediaTypeGIF, false},
		{"webp with webp extension", webpHeader, "pic.webp", filetype.MediaTypeWebP, false},
		{"png bytes with jpg extension", pngHeader, "image.jpg", "", true},
		{"unknown content", []byte("MZ executable content"), "image.png", "", true},
		{"no extension skips cross-check", pngHeader, "image", filetype.MediaTypePNG, false},
		{"unmapped extension skips cross-check", pngHeader, "image.bin", filetype.MediaTypePNG, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := bufio.NewReader(bytes.NewReader(tt.data))
			mediaType, err := filetype.Validate(br, tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mediaType)
		})
	}
}

func TestValidate_EmptyFile(t *testing.T) {
	br := bufio.NewReader(bytes.NewReader(nil))
	_, err := filetype.Validate(br, "image.png")
	assert.ErrorIs(t, err, filetype.ErrEmptyFile)
}

func TestValidate_TooSmall(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"two bytes", []byte{0xFF, 0xD8}},
		{"three bytes matching jpeg prefix", []byte{0xFF, 0xD8, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := bufio.NewReader(bytes.NewReader(tt.data))
			_, err := filetype.Validate(br, "image.jpg")
			assert.ErrorIs(t, err, filetype.ErrTooSmall)
		})
	}
}

func TestValidate_FourByteMinimum(t *testing.T) {
	br := bufio.NewReader(bytes.NewReader([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	mediaType, err := filetype.Validate(br, "image.jpg")
	require.NoError(t, err)
	assert.Equal(t, filetype.MediaTypeJPEG, mediaType)
}

func TestValidate_UnknownSignature(t *testing.T) {
	br := bufio.NewReader(bytes.NewReader([]byte("just some plain text")))
	_, err := filetype.Validate(br, "notes.png")
	assert.ErrorIs(t, err, filetype.ErrUnknownSignature)
}

func TestValidate_ExtensionMismatch(t *testing.T) {
	br := bufio.NewReader(bytes.NewReader(pngHeader))
	_, err := filetype.Validate(br, "image.jpg")

	var mismatch *filetype.ExtensionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, ".jpg", mismatch.Extension)
	assert.Equal(t, filetype.MediaTypePNG, mismatch.MediaType)
	assert.Contains(t, err.Error(), "possible malicious file")
}

func TestValidate_DoesNotConsumeStream(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), []byte("rest of the image data")...)
	br := bufio.NewReader(bytes.NewReader(payload))

	_, err := filetype.Validate(br, "image.png")
	require.NoError(t, err)

	// The full stream must still be readable after validation
	remaining, err := io.ReadAll(br)
	require.NoError(t, err)
	assert.Equal(t, payload, remaining)
}

func TestAllowedExtension(t *testing.T) {
	assert.True(t, filetype.AllowedExtension("a.png"))
	assert.True(t, filetype.AllowedExtension("a.JPEG"))
	assert.False(t, filetype.AllowedExtension("a.svg"))
	assert.False(t, filetype.AllowedExtension("noext"))
}
