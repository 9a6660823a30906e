package export

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/yaptide/chipstack/pkg/region"
	"github.com/yaptide/chipstack/pkg/stack/layers"
)

// Images draws footprint of every entry over box. Pixel size is in
// database units. Files are named <name>_<entry>.png.
func Images(name string, entries []layers.Entry, box region.Box, pixel float64) (map[string][]byte, error) {
	files := map[string][]byte{}
	for _, e := range entries {
		raster := e.Region.Rasterize(box, pixel)
		var buf bytes.Buffer
		if err := png.Encode(&buf, raster.Image); err != nil {
			return nil, fmt.Errorf("[export] %s: %s", e.Name, err)
		}
		files[fmt.Sprintf("%s_%s.png", name, e.Name)] = buf.Bytes()
		log.Debugf("%s: %d covered pixels", e.Name, raster.CoveredCount())
	}
	return files, nil
}

// WriteBinary stores binary files in dir.
func WriteBinary(dir string, files map[string][]byte) error {
	text := make(map[string]string, len(files))
	for name, content := range files {
		text[name] = string(content)
	}
	return Write(dir, text)
}
