package server

import (
	"image"
	"image/color"
	"image/png"
	"net/http"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"main/dash"
	"main/errors"
	"main/logger"
)

// Colours lifted from the legacy "My Classes" widget.
var (
	snapTeal   = color.RGBA{0x10, 0x78, 0x95, 0xff}
	snapPurple = color.RGBA{0x5c, 0x00, 0x6c, 0xff}
	snapGray   = color.RGBA{0x60, 0x60, 0x60, 0xff}
	snapLine   = color.RGBA{0xe4, 0xe4, 0xe4, 0xff}
)

const (
	snapWidth   = 1148
	snapHeaderH = 72
	snapRowH    = 76
	snapMargin  = 28
)

func fillrect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			img.Set(x, y, c)
		}
	}
}

func imprint(dest *image.RGBA, text string, face font.Face, c color.Color, pos image.Point) {
	pen := font.Drawer{
		Dst:  dest,
		Src:  image.NewUniform(c),
		Face: face,
	}
	pen.Dot = fixed.Point26_6{
		X: fixed.I(pos.X),
		Y: fixed.I(pos.Y),
	}
	pen.DrawString(text)
}

type snapFaces struct {
	head  font.Face
	title font.Face
	time  font.Face
	note  font.Face
}

func mkfaces() (snapFaces, error) {
	boldttf, err := freetype.ParseFont(gobold.TTF)
	if err != nil {
		return snapFaces{}, errors.NewError("server.mkfaces", "cannot parse bold font", err)
	}
	regttf, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return snapFaces{}, errors.NewError("server.mkfaces", "cannot parse regular font", err)
	}
	opts := func(size float64) *truetype.Options {
		return &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone}
	}
	return snapFaces{
		head:  truetype.NewFace(boldttf, opts(22.0)),
		title: truetype.NewFace(boldttf, opts(18.0)),
		time:  truetype.NewFace(boldttf, opts(15.0)),
		note:  truetype.NewFace(regttf, opts(13.0)),
	}, nil
}

func mkrow(canvas *image.RGBA, row classRow, faces snapFaces, y int) {
	base := y + 32
	imprint(canvas, row.TimeRange, faces.time, snapTeal, image.Pt(snapMargin, base))

	titleX := snapMargin + 230
	titleColor := color.Color(snapPurple)
	if row.Cancelled {
		titleColor = snapGray
	}
	imprint(canvas, row.Title, faces.title, titleColor, image.Pt(titleX, base))
	if row.Cancelled {
		width := font.MeasureString(faces.title, row.Title).Round()
		fillrect(canvas, image.Rect(titleX, base-6, titleX+width, base-4), snapGray)
	}

	note := row.FacultyPrimary
	if row.Room != "" {
		if note != "" {
			note += " | "
		}
		note += row.Room
	}
	if row.Cancelled {
		note = "Cancelled"
	}
	if note != "" {
		imprint(canvas, note, faces.note, snapGray, image.Pt(titleX, base+22))
	}

	fillrect(canvas, image.Rect(snapMargin, y+snapRowH-1, snapWidth-snapMargin, y+snapRowH), snapLine)
}

// schedulePNG renders the day's classes as a downloadable card in the style
// of the legacy widget.
func schedulePNG(rows []classRow, day time.Time, w http.ResponseWriter) error {
	faces, err := mkfaces()
	if err != nil {
		return err
	}

	count := len(rows)
	if count == 0 {
		count = 1
	}
	height := snapHeaderH + count*snapRowH + snapMargin

	canvas := image.NewRGBA(image.Rect(0, 0, snapWidth, height))
	fillrect(canvas, canvas.Bounds(), color.White)

	imprint(canvas, "My Classes", faces.head, snapPurple, image.Pt(snapMargin, 44))
	dateLabel := day.Format("Monday, 02 Jan 2006")
	dateWidth := font.MeasureString(faces.note, dateLabel).Round()
	imprint(canvas, dateLabel, faces.note, snapGray, image.Pt(snapWidth-snapMargin-dateWidth, 44))
	fillrect(canvas, image.Rect(snapMargin, snapHeaderH-8, snapWidth-snapMargin, snapHeaderH-6), snapTeal)

	if len(rows) == 0 {
		imprint(canvas, "No classes scheduled.", faces.note, snapGray, image.Pt(snapMargin, snapHeaderH+40))
	}
	for i, row := range rows {
		mkrow(canvas, row, faces, snapHeaderH+i*snapRowH)
	}

	return png.Encode(w, canvas)
}

// Handle "/schedule.png": a PNG snapshot of the already-fetched schedule,
// served as an attachment. No upstream calls happen here.
func snapshotHandler(w http.ResponseWriter, r *http.Request) {
	board, _, err := boardFor(r)
	if err != nil {
		redirectToLogin(w, r)
		return
	}

	d := board.Snapshot()
	if d.Schedule.Phase != dash.Ready {
		w.WriteHeader(502)
		return
	}

	day := time.Now().In(tz)
	rows := genClassRows(d.Schedule.Data)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule-`+day.Format("2006-01-02")+`.png"`)
	err = schedulePNG(rows, day, w)
	if err != nil {
		logger.Error(errors.NewError("server.snapshotHandler", "cannot render schedule snapshot", err))
	}
}
