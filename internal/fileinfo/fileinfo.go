package fileinfo

import (
	"github.com/bstardust/datestamp/pkg/s3client"
)

// IsImageFile checks if a file is a raster image the pipeline can stamp
func IsImageFile(filename string) bool {
	return s3client.IsImageFile(filename)
}

// GetContentType returns the content type for a file
func GetContentType(filename string) string {
	return s3client.DetectContentType(filename)
}
