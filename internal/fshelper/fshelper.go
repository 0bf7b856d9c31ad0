package fshelper

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// NameFS is a filesystem that has a name
type NameFS interface {
	fs.FS
	Name() string
}

// DirFS represents a directory filesystem with a name
type DirFS struct {
	fs.FS
	name string
}

// NewDirFS wraps a directory as a named filesystem
func NewDirFS(path string) *DirFS {
	return &DirFS{
		FS:   os.DirFS(path),
		name: filepath.Base(path),
	}
}

// Name returns the name of the filesystem
func (d *DirFS) Name() string {
	return d.name
}

// ZipFS represents a zip filesystem with a name
type ZipFS struct {
	*zip.Reader
	name string
	rc   io.Closer
}

// Name returns the name of the filesystem
func (z *ZipFS) Name() string {
	return z.name
}

// Close closes the zip file
func (z *ZipFS) Close() error {
	if z.rc != nil {
		return z.rc.Close()
	}
	return nil
}

// OpenZip opens a zip file and returns a filesystem
func OpenZip(path string) (*ZipFS, error) {
	zipFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening zip file: %w", err)
	}

	info, err := zipFile.Stat()
	if err != nil {
		zipFile.Close()
		return nil, fmt.Errorf("error getting zip file info: %w", err)
	}

	zipReader, err := zip.NewReader(zipFile, info.Size())
	if err != nil {
		zipFile.Close()
		return nil, fmt.Errorf("error creating zip reader: %w", err)
	}

	return &ZipFS{
		Reader: zipReader,
		name:   filepath.Base(path),
		rc:     zipFile,
	}, nil
}

// WalkDir walks a filesystem and calls the function for each file
func WalkDir(fsys fs.FS, root string, fn fs.WalkDirFunc) error {
	return fs.WalkDir(fsys, root, fn)
}

// ReadFile reads a file from a filesystem
func ReadFile(fsys fs.FS, name string) ([]byte, error) {
	return fs.ReadFile(fsys, name)
}
