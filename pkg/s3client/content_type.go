package s3client

import (
	"mime"
	"path/filepath"
	"strings"
)

// Common MIME types for the formats the pipeline touches
var commonMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".bmp":  "image/bmp",
	".zip":  "application/zip",
	".json": "application/json",
}

// DetectContentType determines the content type of a file based on its extension
func DetectContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	// Check our common types first
	if mimeType, ok := commonMimeTypes[ext]; ok {
		return mimeType
	}

	// Fall back to the standard library
	mimeType := mime.TypeByExtension(ext)
	if mimeType != "" {
		return mimeType
	}

	// Default to binary data
	return "application/octet-stream"
}

// IsImageFile checks if a file is a raster image the pipeline can decode.
// Video and multi-frame containers are deliberately absent.
func IsImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".tiff", ".tif", ".bmp":
		return true
	default:
		return false
	}
}
