package output

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"tflow/config"
	"tflow/page"
)

// Renderer draws box with its content.
type Renderer interface {
	Render(b *page.Box) image.Image
}

// Store receives encoded previews, normally debug report.
type Store interface {
	StoreData(name string, data []byte)
}

// Previews renders every box into PNG image scaled down to fit width x
// height and passes it to store.
func Previews(boxes []*page.Box, r Renderer, width, height int, store Store) error {
	for i, b := range boxes {
		img := imaging.Fit(r.Render(b), width, height, imaging.Lanczos)

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return fmt.Errorf("unable to encode preview of %s: %w", b.Name, err)
		}
		store.StoreData(PreviewName(i, b), buf.Bytes())
	}
	return nil
}

// PreviewName returns name under which preview of i-th box is stored.
func PreviewName(i int, b *page.Box) string {
	return fmt.Sprintf("previews/%03d-%s.png", i+1, config.CleanFileName(b.Name))
}
