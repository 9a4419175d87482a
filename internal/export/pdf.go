package export

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFFilename is the name PDF exports are offered under.
const PDFFilename = "drawing.pdf"

// EncodePDF writes a single-page PDF whose page is exactly the size of img,
// one point per pixel, with img embedded as PNG.
func EncodePDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("export: cannot write pdf of empty image %v", b)
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return err
	}

	wd, ht := float64(b.Dx()), float64(b.Dy())
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	p.RegisterImageOptionsReader(Filename, opts, &buf)
	p.ImageOptions(Filename, 0, 0, wd, ht, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}
