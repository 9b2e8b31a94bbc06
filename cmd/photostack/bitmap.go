package main

import (
	"bytes"
	"fmt"
	"image"

	draw9 "9fans.net/go/draw"
)

// toPlan9Bitmap converts an image to the plan9 format for display.
func toPlan9Bitmap(img *image.RGBA) *bytes.Buffer {
	n := 60 + img.Bounds().Dx()*img.Bounds().Dy()*4
	b := bytes.NewBuffer(make([]byte, 0, n))
	fmt.Fprintf(b, "%11s %11d %11d %11d %11d ",
		"r8g8b8a8", 0, 0, img.Bounds().Dx(), img.Bounds().Dy())
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		i := img.PixOffset(img.Bounds().Min.X, y)
		for row := img.Pix[i : i+4*img.Bounds().Dx()]; len(row) > 0; row = row[4:] {
			b.WriteByte(row[3])
			b.WriteByte(row[2])
			b.WriteByte(row[1])
			b.WriteByte(row[0])
		}
	}
	return b
}

// blit copies img on dst at r.
func blit(disp *draw9.Display, dst *draw9.Image, r image.Rectangle, img *image.RGBA) error {
	t, err := disp.ReadImage(toPlan9Bitmap(img))
	if err != nil {
		return fmt.Errorf("blit: %w", err)
	}
	dst.Draw(r, t, nil, image.Point{})
	return t.Free()
}
