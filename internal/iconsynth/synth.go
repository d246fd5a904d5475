// SPDX-License-Identifier: MPL-2.0

package iconsynth

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/colorit/colorit/pkg/ico"
	"github.com/colorit/colorit/pkg/tint"
)

// Synthesizer produces icon containers for folder overrides.
// The zero value is ready to use.
type Synthesizer struct{}

// New returns a Synthesizer.
func New() *Synthesizer { return &Synthesizer{} }

// Synthesize renders c at every canonical size and bundles the PNG payloads.
func (s *Synthesizer) Synthesize(c tint.ColorSpec) (*ico.Container, error) {
	return Synthesize(c)
}

// Synthesize renders c at every canonical size and bundles the PNG payloads.
func Synthesize(c tint.ColorSpec) (*ico.Container, error) {
	master := Render(c)
	enc := png.Encoder{CompressionLevel: png.BestCompression}

	out := &ico.Container{Images: make([]ico.Image, 0, len(ico.CanonicalSizes))}
	for _, size := range ico.CanonicalSizes {
		img := Resample(master, size)

		var buf bytes.Buffer
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode %dpx image: %w", size, err)
		}
		out.Images = append(out.Images, ico.Image{Size: size, Data: buf.Bytes()})
	}
	return out, nil
}

// Resample scales src to a size x size square. The master size is returned
// unchanged.
func Resample(src *image.RGBA, size int) *image.RGBA {
	if src.Bounds().Dx() == size && src.Bounds().Dy() == size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
