package main

import (
	"log"
	"log/slog"

	"ArtistryCanvas/internal/board"
	"ArtistryCanvas/internal/config"
	"ArtistryCanvas/internal/ui"

	"fyne.io/fyne/v2/app"
)

const AppID = "io.artistrycanvas.studio"

func main() {
	log.Println("Starting Artistry Canvas Studio")

	// Stroke, resize and export events share the standard logger.
	board.SetLogger(slog.Default())

	a := app.NewWithID(AppID)
	cfg := config.Load(a.Preferences())
	ui.RunApp(a, cfg)
}
