package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// placeholderImage is a white image with the chart title and a "no data"
// notice centered on it.
func placeholderImage(w, h int, title string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: color.RGBA{0x55, 0x55, 0x55, 0xff}},
		Face: face,
	}

	lines := []string{title, "no data for the selected period"}
	lineH := face.Height + 6
	y := h/2 - (len(lines)*lineH)/2 + face.Ascent
	for _, line := range lines {
		tw := d.MeasureString(line).Ceil()
		d.Dot = fixed.P(w/2-tw/2, y)
		d.DrawString(line)
		y += lineH
	}
	return img
}

func writePlaceholder(w io.Writer, width, height int, title string) error {
	return png.Encode(w, placeholderImage(width, height, title))
}
