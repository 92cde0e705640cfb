package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// encodePDF writes a single-page PDF whose page is the raster's size in
// points, with the raster embedded as a PNG at full bleed.
func encodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}

	b := img.Bounds()
	wd, ht := float64(b.Dx()), float64(b.Dy())

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetTitle("LocalSketch drawing", true)
	p.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("raster", opt, &buf)
	p.ImageOptions("raster", 0, 0, wd, ht, false, opt, 0, "")
	if p.Err() {
		return fmt.Errorf("build pdf: %w", p.Error())
	}
	return p.Output(w)
}
