package compositor

import (
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/bstardust/datestamp/pkg/common"
)

// loadFont parses the font the stamp is drawn with. An empty path selects
// the embedded Go Bold face so the binary works without any font files
// installed; otherwise the file must be a parseable .ttf/.otf.
func loadFont(path string) (*opentype.Font, error) {
	data := gobold.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, common.NewConfigError("cannot read font file " + path + ": " + err.Error())
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, common.NewConfigError("cannot parse font " + path + ": " + err.Error())
	}
	return f, nil
}
