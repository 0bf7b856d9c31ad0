// Package photosource expands command-line arguments — image files,
// directories, glob patterns and zip archives — into the ordered list of
// photos a batch will stamp. Entry order follows the argument order;
// directories and archives contribute their images in lexical walk order.
package photosource

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bstardust/datestamp/internal/fileinfo"
	"github.com/bstardust/datestamp/internal/fshelper"
	"github.com/bstardust/datestamp/internal/logger"
)

// Entry is one photo awaiting stamping
type Entry struct {
	// Name is the base file name, used for output naming
	Name string

	fsys fs.FS
	path string
}

// Bytes reads the photo's raw content
func (e Entry) Bytes() ([]byte, error) {
	return fshelper.ReadFile(e.fsys, e.path)
}

// Collection is an expanded photo set plus the archive handles backing it.
// Callers must Close it once every entry has been read.
type Collection struct {
	Entries []Entry

	closers []io.Closer
}

// Close releases the archive handles opened during collection. Entries
// backed by a closed archive are no longer readable.
func (c *Collection) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// Collect expands args into photo entries. Non-image files inside
// directories and archives are skipped silently; an argument that matches
// nothing is an error.
func Collect(ctx context.Context, args []string) (*Collection, error) {
	col := &Collection{}

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			col.Close()
			return nil, fmt.Errorf("invalid glob pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err != nil {
				col.Close()
				return nil, fmt.Errorf("path does not exist: %s", arg)
			}
			matches = []string{arg}
		}

		for _, match := range matches {
			if ctx.Err() != nil {
				col.Close()
				return nil, ctx.Err()
			}

			found, closer, err := collectPath(ctx, match)
			if closer != nil {
				col.closers = append(col.closers, closer)
			}
			if err != nil {
				col.Close()
				return nil, err
			}
			col.Entries = append(col.Entries, found...)
		}
	}

	return col, nil
}

func collectPath(ctx context.Context, path string) ([]Entry, io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	switch {
	case info.IsDir():
		entries, err := scan(ctx, fshelper.NewDirFS(path))
		return entries, nil, err

	case strings.HasSuffix(strings.ToLower(path), ".zip"):
		zfs, err := fshelper.OpenZip(path)
		if err != nil {
			return nil, nil, err
		}
		entries, err := scan(ctx, zfs)
		return entries, zfs, err

	case fileinfo.IsImageFile(path):
		return []Entry{{
			Name: filepath.Base(path),
			fsys: os.DirFS(filepath.Dir(path)),
			path: filepath.Base(path),
		}}, nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// scan walks a directory or archive filesystem collecting its images
func scan(ctx context.Context, fsys fshelper.NameFS) ([]Entry, error) {
	var entries []Entry

	err := fshelper.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !fileinfo.IsImageFile(path) {
			return nil
		}

		entries = append(entries, Entry{
			Name: filepath.Base(path),
			fsys: fsys,
			path: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", fsys.Name(), err)
	}

	if len(entries) == 0 {
		logger.Warn("No images found in %s", fsys.Name())
	}
	return entries, nil
}
