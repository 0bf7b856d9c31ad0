// Package archive bundles stamped outputs into a single downloadable zip.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/bstardust/datestamp/pkg/common"
)

// Entry is one named blob destined for the archive
type Entry struct {
	Name string
	Data []byte
}

// Pack combines the entries into one zip blob. Duplicate names are
// de-duplicated with " (n)" suffixes so no output silently overwrites
// another.
func Pack(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]int, len(entries))
	for _, entry := range entries {
		name := uniqueName(seen, entry.Name)

		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, common.NewArchiveError(fmt.Sprintf("cannot add %s: %v", name, err))
		}
		if _, err := w.Write(entry.Data); err != nil {
			zw.Close()
			return nil, common.NewArchiveError(fmt.Sprintf("cannot write %s: %v", name, err))
		}
	}

	if err := zw.Close(); err != nil {
		return nil, common.NewArchiveError(err.Error())
	}
	return buf.Bytes(), nil
}

func uniqueName(seen map[string]int, name string) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}

	ext := ""
	stem := name
	if i := strings.LastIndex(name, "."); i > 0 {
		stem, ext = name[:i], name[i:]
	}
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}
