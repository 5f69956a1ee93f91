package imageproc

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// Info describes an uploaded payload as far as it could be decoded.
type Info struct {
	Format string
	Width  int
	Height int
}

// DetectFormat inspects the raw bytes and returns the image format:
// "jpeg", "png", "gif", "webp", "svg", or "" if unknown.
func DetectFormat(data []byte) string {
	if IsSVG(data) {
		return "svg"
	}
	// JPEG: starts with FF D8 FF
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "jpeg"
	}
	// PNG: starts with 89 50 4E 47 0D 0A 1A 0A
	if len(data) >= 8 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 &&
		data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A {
		return "png"
	}
	// GIF: starts with GIF87a or GIF89a
	if len(data) >= 6 && data[0] == 'G' && data[1] == 'I' && data[2] == 'F' {
		return "gif"
	}
	// WebP: starts with RIFF....WEBP
	if len(data) >= 12 && data[0] == 'R' && data[1] == 'I' && data[2] == 'F' && data[3] == 'F' &&
		data[8] == 'W' && data[9] == 'E' && data[10] == 'B' && data[11] == 'P' {
		return "webp"
	}
	return ""
}

// IsSVG checks whether the data appears to be SVG content by looking for
// XML/SVG markers near the beginning of the file.
func IsSVG(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	limit := 512
	if len(data) < limit {
		limit = len(data)
	}
	header := data[:limit]
	return bytes.Contains(header, []byte("<svg"))
}

// Inspect sniffs the format of data and, for raster formats, decodes it to
// capture pixel dimensions. SVG and unrecognised payloads come back with the
// sniffed format and zero dimensions.
func Inspect(data []byte) Info {
	info := Info{Format: DetectFormat(data)}

	switch info.Format {
	case "jpeg", "png", "gif", "webp":
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return info
		}
		b := img.Bounds()
		info.Width = b.Dx()
		info.Height = b.Dy()
	}
	return info
}
