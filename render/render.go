// Package render turns a *qrcodegen.QRCode into a visual or textual form.
// It is a pure consumer of the encoder's public accessors (Size, At); the
// encoding core never imports this package, or any other I/O-performing
// code.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	qrcodegen "github.com/brennofsouza/qrencode"
)

// SVG renders q as an inline SVG document: one <path> built from unit
// squares, one per dark module, surrounded by a quiet zone border modules
// wide on every side.
func SVG(q *qrcodegen.QRCode, border int) (string, error) {
	if border < 0 {
		return "", fmt.Errorf("render: border must be non-negative, got %d", border)
	}

	size := q.Size()
	var sb strings.Builder
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" viewBox=\"0 0 %[1]d %[1]d\" stroke=\"none\">\n", size+border*2)
	sb.WriteString("\t<rect width=\"100%\" height=\"100%\" fill=\"#FFFFFF\"/>\n")
	sb.WriteString("\t<path d=\"")
	first := true
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !q.At(x, y) {
				continue
			}
			if !first {
				sb.WriteString(" ")
			}
			first = false
			fmt.Fprintf(&sb, "M%d,%dh1v1h-1z", x+border, y+border)
		}
	}
	sb.WriteString("\" fill=\"#000000\"/>\n")
	sb.WriteString("</svg>\n")

	return sb.String(), nil
}

// PNG writes q to w as a 1-bit paletted PNG, scale pixels per module,
// surrounded by a quiet zone border modules wide. A scale below 1 is
// treated as 1.
func PNG(w io.Writer, q *qrcodegen.QRCode, border, scale int) error {
	if border < 0 {
		return fmt.Errorf("render: border must be non-negative, got %d", border)
	}
	if scale < 1 {
		scale = 1
	}

	size := q.Size()
	dim := (size + 2*border) * scale
	img := image.NewPaletted(image.Rect(0, 0, dim, dim), color.Palette{color.White, color.Black})

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !q.At(x, y) {
				continue
			}
			startX := (x + border) * scale
			startY := (y + border) * scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(startX+dx, startY+dy, 1)
				}
			}
		}
	}

	return png.Encode(w, img)
}

// Terminal renders q as half-block text: each output row packs two module
// rows into one line using "▀"/"▄"/" "/"█", the technique
// github.com/mdp/qrterminal/v3 uses to fit a QR code into half as many
// terminal rows. Colors are the terminal's default foreground/background.
func Terminal(q *qrcodegen.QRCode, border int) string {
	size := q.Size()
	total := size + 2*border
	at := func(x, y int) bool {
		return q.At(x-border, y-border)
	}

	var sb strings.Builder
	for y := 0; y < total; y += 2 {
		for x := 0; x < total; x++ {
			top := at(x, y)
			bottom := y+1 < total && at(x, y+1)
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top && !bottom:
				sb.WriteString("▀")
			case !top && bottom:
				sb.WriteString("▄")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
