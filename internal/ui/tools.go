package ui

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"ArtistryCanvas/internal/config"
	"ArtistryCanvas/internal/export"
	"ArtistryCanvas/internal/stroke"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// --- Color swatch showing the selected color ---
type colorSwatch struct {
	widget.BaseWidget
	rect     *canvas.Rectangle
	OnTapped func()
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{rect: canvas.NewRectangle(c), OnTapped: tapped}
	s.rect.SetMinSize(fyne.NewSize(38, 38))
	s.rect.StrokeColor = color.Gray{Y: 150}
	s.rect.StrokeWidth = 1
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) SetColor(c color.Color) {
	s.rect.FillColor = c
	s.rect.Refresh()
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// Tools is the side panel next to the canvas.
type Tools struct {
	canvas *CanvasWidget
	cfg    *config.Config
	win    fyne.Window

	Swatch *colorSwatch
	Hex    *widget.Entry
	Size   *widget.Slider
	Status *widget.Label
}

// NewTools builds the tool panel for c. win parents the dialogs and may be
// nil in tests.
func NewTools(c *CanvasWidget, cfg *config.Config, win fyne.Window) *Tools {
	t := &Tools{canvas: c, cfg: cfg, win: win, Status: widget.NewLabel("Ready")}

	t.Swatch = newColorSwatch(swatchColor(c.Board().Color()), t.pickColor)

	// The hex field writes straight through; a malformed code is kept as
	// typed and simply does not change the ink.
	t.Hex = widget.NewEntry()
	t.Hex.SetPlaceHolder("Hex Code")
	t.Hex.SetText(c.Board().Color())
	t.Hex.OnChanged = t.applyColor

	t.Size = widget.NewSlider(1, float64(config.MaxStrokeWidth))
	t.Size.SetValue(float64(c.Board().Settings().Width))
	t.Size.OnChanged = func(v float64) {
		c.Board().SetWidth(float32(v))
		cfg.StrokeWidth = float32(v)
	}
	return t
}

// SetColor selects col as if it had been chosen in the picker.
func (t *Tools) SetColor(col color.Color) {
	hex := stroke.HexString(col)
	t.Hex.SetText(hex)
	t.applyColor(hex)
}

func (t *Tools) applyColor(s string) {
	t.canvas.Board().SetColor(s)
	t.cfg.Color = s
	if col, err := stroke.ParseColor(s); err == nil {
		t.Swatch.SetColor(col)
	}
}

func (t *Tools) pickColor() {
	if t.win == nil {
		return
	}
	d := dialog.NewColorPicker("Choose Color", "", t.SetColor, t.win)
	d.Advanced = true
	if col, err := stroke.ParseColor(t.Hex.Text); err == nil {
		d.SetColor(col)
	}
	d.Show()
}

// Clear erases the drawing.
func (t *Tools) Clear() {
	t.canvas.Board().Clear()
	t.setStatus("Canvas cleared")
}

// Download asks where to save the drawing as PNG.
func (t *Tools) Download() {
	t.saveAs(export.Filename, t.canvas.Board().ExportPNG)
}

// ExportPDF asks where to save the drawing as PDF.
func (t *Tools) ExportPDF() {
	t.saveAs(export.PDFFilename, t.canvas.Board().ExportPDF)
}

func (t *Tools) saveAs(name string, encode func(io.Writer) error) {
	if t.win == nil {
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.win)
			return
		}
		if writer == nil {
			return // cancelled
		}
		t.write(writer, encode)
	}, t.win)
	d.SetFileName(name)
	if t.cfg.ExportDir != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(t.cfg.ExportDir)); err == nil {
			d.SetLocation(dir)
		}
	}
	d.Show()
}

func (t *Tools) write(writer fyne.URIWriteCloser, encode func(io.Writer) error) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("Error closing %s: %v", writer.URI(), err)
		}
	}()

	if err := encode(writer); err != nil {
		log.Printf("Export to %s failed: %v", writer.URI(), err)
		t.setStatus("Export failed")
		if t.win != nil {
			dialog.ShowError(err, t.win)
		}
		return
	}
	if parent, err := storage.Parent(writer.URI()); err == nil {
		t.cfg.ExportDir = parent.Path()
	}
	t.setStatus(fmt.Sprintf("Saved %s", writer.URI().Name()))
}

func (t *Tools) setStatus(text string) {
	fyne.Do(func() {
		t.Status.SetText(text)
	})
}

// Layout assembles the panel.
func (t *Tools) Layout() fyne.CanvasObject {
	heading := widget.NewLabelWithStyle("Choose Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	colorRow := container.NewBorder(nil, nil, t.Swatch, nil, t.Hex)

	sizeRow := container.New(layout.NewGridWrapLayout(fyne.NewSize(180, 35)), t.Size)

	download := widget.NewButtonWithIcon("Download Image", theme.DownloadIcon(), t.Download)
	download.Importance = widget.SuccessImportance
	pdf := widget.NewButtonWithIcon("Export PDF", theme.DocumentSaveIcon(), t.ExportPDF)
	clearBtn := widget.NewButtonWithIcon("Clear Canvas", theme.DeleteIcon(), t.Clear)
	clearBtn.Importance = widget.DangerImportance

	return container.NewVBox(
		heading,
		colorRow,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sizeRow,
		widget.NewSeparator(),
		download,
		pdf,
		clearBtn,
		layout.NewSpacer(),
	)
}

func swatchColor(hex string) color.Color {
	if c, err := stroke.ParseColor(hex); err == nil {
		return c
	}
	return color.Black
}
