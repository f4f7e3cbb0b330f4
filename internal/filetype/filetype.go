// Package filetype detects image formats by their magic numbers and
// validates uploaded files against their declared filenames.
package filetype

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// sniffLen is the number of leading bytes needed to identify all
// supported formats. WebP needs the most: RIFF....WEBP is 12 bytes.
const sniffLen = 12

var (
	ErrEmptyFile        = errors.New("file is empty")
	ErrTooSmall         = errors.New("file is too small to identify")
	ErrUnknownSignature = errors.New("file is not a recognized image format")
)

// DisallowedTypeError indicates the file is a recognized format that is
// not accepted for upload.
type DisallowedTypeError struct {
	MediaType string
}

func (e *DisallowedTypeError) Error() string {
	return fmt.Sprintf("media type %s is not allowed", e.MediaType)
}

// ExtensionMismatchError indicates the file content does not match the
// media type implied by its filename extension.
type ExtensionMismatchError struct {
	Extension string
	MediaType string
}

func (e *ExtensionMismatchError) Error() string {
	return fmt.Sprintf("possible malicious file: extension %s does not match content type %s", e.Extension, e.MediaType)
}

const (
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
	MediaTypeGIF  = "image/gif"
	MediaTypeWebP = "image/webp"
)

var allowedTypes = map[string]bool{
	MediaTypeJPEG: true,
	MediaTypePNG:  true,
	MediaTypeGIF:  true,
	MediaTypeWebP: true,
}

var extensionTypes = map[string]string{
	".jpg":  MediaTypeJPEG,
	".jpeg": MediaTypeJPEG,
	".png":  MediaTypePNG,
	".gif":  MediaTypeGIF,
	".webp": MediaTypeWebP,
}

// AllowedExtension reports whether the filename carries an extension
// for a supported image format.
func AllowedExtension(filename string) bool {
	_, ok := extensionTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Sniff identifies the media type of the given leading bytes. It
// returns an empty string when no known signature matches.
func Sniff(buf []byte) string {
	if len(buf) >= 3 && bytes.Equal(buf[:3], []byte{0xFF, 0xD8, 0xFF}) {
		return MediaTypeJPEG
	}
	if len(buf) >= 8 && bytes.Equal(buf[:8], []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}) {
		return MediaTypePNG
	}
	if len(buf) >= 4 && bytes.Equal(buf[:4], []byte("GIF8")) {
		return MediaTypeGIF
	}
	if len(buf) >= 12 && bytes.Equal(buf[:4], []byte("RIFF")) && bytes.Equal(buf[8:12], []byte("WEBP")) {
		return MediaTypeWebP
	}
	return ""
}

// Validate inspects the stream's leading bytes without consuming them
// and checks that the content is an allowed image format matching the
// filename's extension. It returns the detected media type.
func Validate(br *bufio.Reader, filename string) (string, error) {
	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return "", err
	}
	if len(buf) == 0 {
		return "", ErrEmptyFile
	}
	if len(buf) < 4 {
		return "", ErrTooSmall
	}

	mediaType := Sniff(buf)
	if mediaType == "" {
		return "", ErrUnknownSignature
	}
	if !allowedTypes[mediaType] {
		return "", &DisallowedTypeError{MediaType: mediaType}
	}

	// The cross-check only applies to extensions the table knows about;
	// unmapped extensions are the caller's concern.
	ext := strings.ToLower(filepath.Ext(filename))
	if expected, ok := extensionTypes[ext]; ok && expected != mediaType {
		return "", &ExtensionMismatchError{Extension: ext, MediaType: mediaType}
	}

	return mediaType, nil
}
