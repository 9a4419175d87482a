package ui

import (
	"fmt"
	"image/color"
	"log"

	"ArtistryCanvas/internal/config"
	"ArtistryCanvas/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Gradient of the title bar.
var (
	headerStart = color.NRGBA{R: 0x00, G: 0xc4, B: 0xcc, A: 0xff}
	headerEnd   = color.NRGBA{R: 0x7d, G: 0x2a, B: 0xe8, A: 0xff}
)

// NewContent lays out the canvas, tool panel and status bar for win.
func NewContent(c *CanvasWidget, tools *Tools, title string) fyne.CanvasObject {
	bg := canvas.NewHorizontalGradient(headerStart, headerEnd)
	heading := canvas.NewText(title, color.White)
	heading.TextSize = 22
	heading.TextStyle = fyne.TextStyle{Bold: true}
	heading.Alignment = fyne.TextAlignCenter
	header := container.NewStack(bg, container.NewPadded(heading))

	return container.NewBorder(header, tools.Status, nil, tools.Layout(), c)
}

// RunApp opens the main window and blocks until it is closed.
func RunApp(a fyne.App, cfg config.Config) {
	win := a.NewWindow(cfg.Title)
	win.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))

	c := NewCanvasWidget(cfg.Settings())
	tools := NewTools(c, &cfg, win)

	c.Board().OnStrokeEnd = func(r state.StrokeRecord) {
		tools.Status.SetText(fmt.Sprintf("Stroke of %d points in %s", r.Points, r.Color))
	}

	// Releases are not reported once the window loses focus.
	a.Lifecycle().SetOnExitedForeground(c.Board().Blur)

	win.SetOnClosed(func() {
		c.Unmount()
		cfg.Save(a.Preferences())
		log.Println("Window closed, settings saved")
	})

	win.SetContent(NewContent(c, tools, cfg.Title))
	win.ShowAndRun()
}
