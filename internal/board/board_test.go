package board

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"ArtistryCanvas/internal/input"
	"ArtistryCanvas/internal/state"
	"ArtistryCanvas/internal/stroke"
	"ArtistryCanvas/internal/surface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type layout struct {
	size   state.Size
	origin state.Point
}

func (l *layout) DisplaySize() state.Size { return l.size }
func (l *layout) Origin() state.Point     { return l.origin }

// tracker records window-level registrations the way a document listener
// would be added and removed.
type tracker struct {
	move, up func(*input.MouseEvent)
	tracks   int
	releases int
}

func (tr *tracker) Track(move, up func(*input.MouseEvent)) func() {
	tr.tracks++
	tr.move, tr.up = move, up
	return func() {
		tr.releases++
		tr.move, tr.up = nil, nil
	}
}

func (tr *tracker) active() bool { return tr.move != nil }

type fixture struct {
	board   *Board
	layout  *layout
	signal  *surface.Signal
	tracker *tracker
	ended   []state.StrokeRecord
	changes int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		layout:  &layout{size: state.Size{Width: 800, Height: 600}, origin: state.Point{X: 100, Y: 50}},
		signal:  &surface.Signal{},
		tracker: &tracker{},
	}
	f.board = New(state.Settings{Color: "#ff0000", Width: 3}, f.tracker)
	f.board.OnStrokeEnd = func(r state.StrokeRecord) { f.ended = append(f.ended, r) }
	f.board.OnChange = func() { f.changes++ }
	require.NoError(t, f.board.Mount(f.layout, f.signal))
	return f
}

func down(x, y float32) *input.MouseEvent {
	return &input.MouseEvent{Offset: state.Point{X: x, Y: y}, HasOffset: true, Buttons: input.ButtonPrimary}
}

// page builds a window-level event, which carries no surface offset.
func page(x, y float32, buttons int) *input.MouseEvent {
	return &input.MouseEvent{Page: state.Point{X: x, Y: y}, Buttons: buttons}
}

func touch(points ...state.Point) *input.TouchEvent {
	e := &input.TouchEvent{}
	for i, p := range points {
		e.Touches = append(e.Touches, input.TouchPoint{ID: i + 1, Page: p})
	}
	return e
}

func assertRed(t *testing.T, b *Board, x, y int) {
	t.Helper()
	got := b.Image().RGBAAt(x, y)
	assert.InDelta(t, 0xff, got.R, 2, "(%d,%d)", x, y)
	assert.Zero(t, got.G, "(%d,%d)", x, y)
	assert.Zero(t, got.B, "(%d,%d)", x, y)
	assert.InDelta(t, 0xff, got.A, 2, "(%d,%d)", x, y)
}

func TestMountSizesSurface(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, 800, f.board.Surface().Width())
	assert.Equal(t, 600, f.board.Surface().Height())
	assert.Equal(t, 1, f.signal.Len())

	f.board.Unmount()
	assert.Equal(t, 0, f.signal.Len())
}

func TestMouseStrokeScenario(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.MouseDown(down(10, 10))
	assert.Equal(t, stroke.Stroking, b.State())
	assert.Equal(t, SourceMouse, b.Source())
	assert.True(t, f.tracker.active())

	// Moves arrive through the window-level listener in page coordinates.
	f.tracker.move(page(150, 60, input.ButtonPrimary))
	f.tracker.up(page(150, 60, 0))

	assert.Equal(t, stroke.Idle, b.State())
	assert.Equal(t, SourceNone, b.Source())
	assert.False(t, f.tracker.active())
	assert.Equal(t, 1, f.tracker.releases)

	for x := 10; x < 50; x += 4 {
		assertRed(t, b, x, 10)
	}

	require.Len(t, f.ended, 1)
	rec := f.ended[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "#ff0000", rec.Color)
	assert.Equal(t, float32(3), rec.Width)
	assert.Equal(t, 2, rec.Points)
	assert.Equal(t, state.Point{X: 10, Y: 10}, rec.Start)
	assert.Equal(t, state.Point{X: 50, Y: 10}, rec.End)
	assert.False(t, rec.Ended.Before(rec.Began))
}

func TestStrokeIDsAreUnique(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.board.MouseDown(down(5, 5))
		f.board.MouseUp(down(5, 5))
	}
	require.Len(t, f.ended, 3)
	assert.NotEqual(t, f.ended[0].ID, f.ended[1].ID)
	assert.NotEqual(t, f.ended[1].ID, f.ended[2].ID)
}

func TestTrackerReleasedOncePerStroke(t *testing.T) {
	ends := map[string]func(f *fixture){
		"mouse up":     func(f *fixture) { f.board.MouseUp(nil) },
		"window up":    func(f *fixture) { f.tracker.up(page(0, 0, 0)) },
		"no buttons":   func(f *fixture) { f.board.MouseMove(page(120, 70, 0)) },
		"blur":         func(f *fixture) { f.board.Blur() },
		"unmount":      func(f *fixture) { f.board.Unmount() },
		"lost release": func(f *fixture) { f.board.MouseDown(down(30, 30)); f.board.MouseUp(nil) },
	}
	for name, end := range ends {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.board.MouseDown(down(10, 10))
			end(f)
			f.board.MouseUp(nil)
			f.board.Blur()

			assert.Equal(t, stroke.Idle, f.board.State())
			assert.Equal(t, f.tracker.tracks, f.tracker.releases)
			assert.False(t, f.tracker.active())
		})
	}
}

func TestLostReleaseStartsNewStroke(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.MouseDown(down(10, 10))
	b.MouseMove(page(140, 60, input.ButtonPrimary))
	b.MouseDown(down(10, 100))
	b.MouseMove(page(140, 150, input.ButtonPrimary))
	b.MouseUp(nil)

	require.Len(t, f.ended, 2)
	assert.Equal(t, state.Point{X: 10, Y: 100}, f.ended[1].Start)
	assert.Equal(t, 2, f.tracker.tracks)
	assert.Equal(t, 2, f.tracker.releases)

	// The second stroke did not continue from the first.
	assert.Equal(t, color.RGBA{}, b.Image().RGBAAt(40, 50))
	assertRed(t, b, 30, 100)
}

func TestMouseIgnoredEvents(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.MouseMove(page(150, 100, input.ButtonPrimary))
	b.MouseUp(nil)
	b.MouseDown(&input.MouseEvent{Offset: state.Point{X: 5, Y: 5}, HasOffset: true, Buttons: input.ButtonSecondary})
	b.MouseDown(nil)
	b.MouseMove(nil)

	assert.Equal(t, stroke.Idle, b.State())
	assert.True(t, b.Surface().Blank())
	assert.Zero(t, f.tracker.tracks)
	assert.Empty(t, f.ended)
	assert.Equal(t, 1, f.changes, "only the mount resize changed pixels")
}

func TestMouseBeforeMount(t *testing.T) {
	tr := &tracker{}
	b := New(state.Settings{Color: "#000"}, tr)
	b.MouseDown(down(1, 1))
	assert.Equal(t, stroke.Idle, b.State())
	assert.Zero(t, tr.tracks)

	var buf bytes.Buffer
	assert.ErrorIs(t, b.ExportPNG(&buf), ErrNotMounted)
	assert.ErrorIs(t, b.ExportPDF(&buf), ErrNotMounted)
	_, err := b.SaveImage(t.TempDir())
	assert.ErrorIs(t, err, ErrNotMounted)
}

func TestNilTracker(t *testing.T) {
	b := New(state.Settings{Color: "#ff0000"}, nil)
	require.NoError(t, b.Mount(&layout{size: state.Size{Width: 60, Height: 60}}, nil))
	b.MouseDown(down(10, 10))
	b.MouseMove(&input.MouseEvent{Offset: state.Point{X: 40, Y: 10}, HasOffset: true, Buttons: input.ButtonPrimary})
	b.MouseUp(nil)
	assert.Equal(t, stroke.Idle, b.State())
	assertRed(t, b, 25, 10)
}

func TestTouchStroke(t *testing.T) {
	f := newFixture(t)
	b := f.board

	start := touch(state.Point{X: 110, Y: 60})
	b.TouchStart(start)
	assert.True(t, start.DefaultPrevented())
	assert.Equal(t, SourceTouch, b.Source())
	assert.Zero(t, f.tracker.tracks, "touch strokes need no window tracking")

	b.TouchMove(touch(state.Point{X: 150, Y: 60}))
	b.TouchEnd(touch())

	assert.Equal(t, stroke.Idle, b.State())
	assertRed(t, b, 30, 10)
	require.Len(t, f.ended, 1)
}

func TestMultiTouchDoesNotDraw(t *testing.T) {
	f := newFixture(t)
	b := f.board

	pinch := touch(state.Point{X: 110, Y: 60}, state.Point{X: 200, Y: 200})
	b.TouchStart(pinch)
	b.TouchMove(touch(state.Point{X: 150, Y: 60}, state.Point{X: 220, Y: 220}))
	b.TouchEnd(touch())

	assert.False(t, pinch.DefaultPrevented())
	assert.Equal(t, stroke.Idle, b.State())
	assert.True(t, b.Surface().Blank())
	assert.Empty(t, f.ended)

	// A second finger mid-stroke does not extend it.
	b.TouchStart(touch(state.Point{X: 110, Y: 60}))
	b.TouchMove(touch(state.Point{X: 150, Y: 60}, state.Point{X: 300, Y: 300}))
	assert.True(t, b.Surface().Blank())
	b.TouchEnd(touch())
}

func TestTouchCancelEndsStroke(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.TouchStart(touch(state.Point{X: 110, Y: 60}))
	b.TouchCancel(touch())
	assert.Equal(t, stroke.Idle, b.State())

	// The next stroke starts fresh instead of continuing the cancelled one.
	b.TouchStart(touch(state.Point{X: 110, Y: 200}))
	b.TouchMove(touch(state.Point{X: 150, Y: 200}))
	b.TouchEnd(touch())
	assert.Equal(t, color.RGBA{}, b.Image().RGBAAt(30, 80))
	assertRed(t, b, 30, 150)
	require.Len(t, f.ended, 2)
}

func TestFirstPointerWins(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.MouseDown(down(10, 10))
	b.TouchStart(touch(state.Point{X: 300, Y: 300}))
	b.TouchMove(touch(state.Point{X: 400, Y: 400}))
	b.TouchEnd(touch())
	assert.Equal(t, SourceMouse, b.Source())
	assert.Equal(t, stroke.Stroking, b.State())
	b.MouseUp(nil)

	b.TouchStart(touch(state.Point{X: 110, Y: 60}))
	b.MouseDown(down(300, 300))
	b.MouseMove(page(500, 500, input.ButtonPrimary))
	b.MouseUp(nil)
	assert.Equal(t, SourceTouch, b.Source())
	assert.Equal(t, 1, f.tracker.tracks)
	b.TouchEnd(touch())

	assert.True(t, b.Surface().Blank())
	assert.Len(t, f.ended, 2)
}

func TestColorCapturedAtBegin(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.MouseDown(down(10, 10))
	b.SetColor("#0000ff")
	b.MouseMove(page(150, 60, input.ButtonPrimary))
	b.MouseUp(nil)
	assertRed(t, b, 30, 10)

	b.MouseDown(down(10, 100))
	b.MouseMove(page(150, 150, input.ButtonPrimary))
	b.MouseUp(nil)
	got := b.Image().RGBAAt(30, 100)
	assert.Zero(t, got.R)
	assert.InDelta(t, 0xff, got.B, 2)
	assert.Equal(t, "#0000ff", f.ended[1].Color)
}

func TestMalformedColorKeepsPrevious(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.SetColor("#ff00")
	assert.Equal(t, "#ff00", b.Color())
	b.MouseDown(down(10, 10))
	b.MouseMove(page(150, 60, input.ButtonPrimary))
	b.MouseUp(nil)
	assertRed(t, b, 30, 10)
	assert.Equal(t, "#ff0000", f.ended[0].Color)
}

func TestWidthSetting(t *testing.T) {
	f := newFixture(t)
	b := f.board
	b.SetWidth(0)
	b.MouseDown(down(10, 10))
	b.MouseUp(nil)
	assert.Equal(t, stroke.DefaultWidth, f.ended[0].Width)

	b.SetWidth(12)
	assert.Equal(t, float32(12), b.Settings().Width)
	b.MouseDown(down(10, 100))
	b.MouseMove(page(150, 150, input.ButtonPrimary))
	b.MouseUp(nil)
	assertRed(t, b, 30, 105)
}

func TestResizeMidSession(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.MouseDown(down(10, 10))
	b.MouseMove(page(150, 60, input.ButtonPrimary))
	require.False(t, b.Surface().Blank())

	f.layout.size = state.Size{Width: 400, Height: 300}
	f.signal.Notify()

	assert.Equal(t, 400, b.Surface().Width())
	assert.Equal(t, 300, b.Surface().Height())
	assert.True(t, b.Surface().Blank())
	assert.Equal(t, stroke.Stroking, b.State())

	b.MouseMove(page(150, 150, input.ButtonPrimary))
	b.MouseUp(nil)
	assertRed(t, b, 50, 70)
}

func TestResizeHandler(t *testing.T) {
	f := newFixture(t)
	f.layout.size = state.Size{Width: 320, Height: 200}
	f.board.Resize()
	assert.Equal(t, 320, f.board.Surface().Width())
	assert.Equal(t, 200, f.board.Surface().Height())
}

func TestClear(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.Clear()
	assert.True(t, b.Surface().Blank())

	b.MouseDown(down(10, 10))
	b.MouseMove(page(150, 60, input.ButtonPrimary))
	b.MouseUp(nil)
	before := f.changes
	b.Clear()
	assert.True(t, b.Surface().Blank())
	assert.Equal(t, before+1, f.changes)
	assert.Equal(t, stroke.Idle, b.State())
}

func TestExportMatchesSurface(t *testing.T) {
	f := newFixture(t)
	b := f.board

	b.MouseDown(down(10, 10))
	b.MouseMove(page(200, 150, input.ButtonPrimary))

	// Exported mid-stroke: already painted segments are included.
	var buf bytes.Buffer
	require.NoError(t, b.ExportPNG(&buf))
	got, err := png.Decode(&buf)
	require.NoError(t, err)

	img := b.Image()
	require.Equal(t, img.Bounds(), got.Bounds())
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			want := color.NRGBAModel.Convert(img.At(x, y))
			assert.Equal(t, want, color.NRGBAModel.Convert(got.At(x, y)), "(%d,%d)", x, y)
		}
	}
	assert.Equal(t, stroke.Stroking, b.State())
}

func TestExportPDFAndSave(t *testing.T) {
	f := newFixture(t)
	b := f.board
	b.MouseDown(down(10, 10))
	b.MouseUp(nil)

	var buf bytes.Buffer
	require.NoError(t, b.ExportPDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	path, err := b.SaveImage(t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, path, "drawing.png")
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "none", SourceNone.String())
	assert.Equal(t, "mouse", SourceMouse.String())
	assert.Equal(t, "touch", SourceTouch.String())
	assert.Equal(t, "unknown", Source(7).String())
}
