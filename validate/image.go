package validate

import (
	"bytes"
	"encoding/base64"
	"strings"
)

// Format is a bitmask of accepted image formats
type Format uint8

const (
	// FormatPNG accepts PNG payloads
	FormatPNG Format = 1 << iota
	// FormatJPEG accepts JPEG payloads
	FormatJPEG
	// FormatGIF accepts GIF payloads
	FormatGIF

	// FormatAny accepts every supported format
	FormatAny = FormatPNG | FormatJPEG | FormatGIF
)

// ImageData is the accepted value produced by the Image unit
type ImageData struct {
	Type     string
	Contents []byte
}

const (
	dataURIPrefix = "data:image/"
	// the header window inspected for the media type and base64 marker
	imageHeaderLen = 36
)

var (
	pngHeader  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	pngTrailer = []byte{0x49, 0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82}

	jpegHeader  = []byte{0xFF, 0xD8, 0xFF}
	jpegTrailer = []byte{0xFF, 0xD9}

	gifHeader  = []byte("GIF8")
	gifTrailer = []byte{0x00, 0x3B}
)

// checkPNG verifies the fixed 8-byte header and IEND trailer
func checkPNG(contents []byte) Outcome {
	if !bytes.HasPrefix(contents, pngHeader) || !bytes.HasSuffix(contents, pngTrailer) {
		return Fail(CodeImagePNG, "Invalid PNG file")
	}
	return Pass(nil)
}

// checkJPEG verifies SOI/EOI markers plus an APPn marker in byte 3
func checkJPEG(contents []byte) Outcome {
	if len(contents) < 4 ||
		!bytes.HasPrefix(contents, jpegHeader) ||
		!bytes.HasSuffix(contents, jpegTrailer) {
		return Fail(CodeImageJPEG, "Invalid JPEG file")
	}
	if contents[3] < 0xE0 || contents[3] > 0xE8 {
		return Fail(CodeImageJPEG, "Invalid JPEG file")
	}
	return Pass(nil)
}

// checkGIF verifies the GIF8{7,9}a header and the block trailer
func checkGIF(contents []byte) Outcome {
	if len(contents) < 6 ||
		!bytes.HasPrefix(contents, gifHeader) ||
		!bytes.HasSuffix(contents, gifTrailer) {
		return Fail(CodeImageGIF, "Invalid GIF file")
	}
	if (contents[4] != '7' && contents[4] != '9') || contents[5] != 'a' {
		return Fail(CodeImageGIF, "Invalid GIF file")
	}
	return Pass(nil)
}

var imageChecks = map[string]struct {
	format Format
	check  func([]byte) Outcome
}{
	"png":  {FormatPNG, checkPNG},
	"jpeg": {FormatJPEG, checkJPEG},
	"jpg":  {FormatJPEG, checkJPEG},
	"gif":  {FormatGIF, checkGIF},
}

func formatNames(accepted Format) string {
	var names []string
	if accepted&FormatPNG != 0 {
		names = append(names, "PNG")
	}
	if accepted&FormatJPEG != 0 {
		names = append(names, "JPEG")
	}
	if accepted&FormatGIF != 0 {
		names = append(names, "GIF")
	}
	return strings.Join(names, ", ")
}

// Image validates a data-URI-embedded base64 image payload.
// Stages, each with its own error kind: header length, data:image/
// prefix, recognized+accepted subtype, base64 marker, base64 decode,
// and a format-specific byte-signature check
func Image(accepted Format) Unit {
	return func(v any) Outcome {
		var contents []byte
		switch x := v.(type) {
		case nil:
			return Pass(nil)
		case []byte:
			contents = x
		case string:
			if x == "" {
				return Pass(nil)
			}
			contents = []byte(x)
		default:
			return Fail(CodeImageContent, "Not valid data contents")
		}
		if len(contents) == 0 {
			return Pass(nil)
		}

		if len(contents) < imageHeaderLen {
			return Fail(CodeImageContentTooShort, "Not valid data contents. Content too short")
		}
		header := contents[:imageHeaderLen]
		if !bytes.HasPrefix(header, []byte(dataURIPrefix)) {
			return Fail(CodeImageMissingHeader, "Not valid data contents. Expected image data")
		}
		mediaType, rest, found := bytes.Cut(header, []byte{';'})
		if !found {
			return Fail(CodeImageMissingHeader, "Not valid data contents. Expected image data")
		}

		subtype := string(mediaType[len(dataURIPrefix):])
		spec, known := imageChecks[subtype]
		if !known || spec.format&accepted == 0 {
			return Failf(CodeImageType, "Unknown image type. Expected %s", formatNames(accepted))
		}

		if !bytes.HasPrefix(rest, []byte("base64,")) {
			return Fail(CodeImageContent, "Unknown image type. Expected base64 contents")
		}

		contentStart := len(mediaType) + len(";base64,")
		decoded, err := base64.StdEncoding.DecodeString(string(contents[contentStart:]))
		if err != nil {
			return Failf(CodeImageContent, "Invalid image contents. %v", err)
		}

		if out := spec.check(decoded); !out.OK() {
			return out
		}
		return Pass(ImageData{Type: subtype, Contents: decoded})
	}
}
