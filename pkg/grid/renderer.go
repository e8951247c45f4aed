package grid

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/ankigrid/ankigrid/pkg/review"
	"github.com/ankigrid/ankigrid/pkg/theme"
	log "github.com/sirupsen/logrus"
)

// Mode selects how cells are aligned to the calendar. The layout evolved from
// the offset strategy to the calendar-strict one; both remain selectable per
// widget.
type Mode string

const (
	// ModeOffset left-pads the first column so the most recent day lands in
	// its real weekday row; padding cells are left undrawn and days outside
	// the window render in the no-data color.
	ModeOffset Mode = "offset"
	// ModeCalendar expands the window to full Monday-to-Sunday weeks; days
	// without a status render in the incomplete color and future days are
	// left undrawn.
	ModeCalendar Mode = "calendar"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOffset:
		return ModeOffset, nil
	case ModeCalendar:
		return ModeCalendar, nil
	default:
		return "", fmt.Errorf("unknown layout mode %q", s)
	}
}

// Render draws the day statuses as a contribution grid of filled circles into
// a fresh pixel buffer. days must be ordered most-recent-first, the way the
// review service produces them.
func Render(days []review.DayStatus, width, height int, mode Mode, palette theme.Palette) (*image.RGBA, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("no day statuses to render")
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("canvas must have positive dimensions, got %dx%d", width, height)
	}

	switch mode {
	case ModeOffset:
		return renderOffset(days, width, height, palette)
	case ModeCalendar:
		return renderCalendar(days, width, height, palette)
	default:
		return nil, fmt.Errorf("unknown layout mode %q", mode)
	}
}

func renderOffset(days []review.DayStatus, width, height int, palette theme.Palette) (*image.RGBA, error) {
	today := days[0].Date
	daysToShow := len(days)

	// Lead padding aligns the newest day with its weekday row: a Monday
	// needs no padding, a Sunday pads the six rows above it.
	leadCells := isoWeekday(today) - 1
	totalCells := leadCells + daysToShow

	geometry, err := ComputeGeometry(totalCells, width, height)
	if err != nil {
		return nil, err
	}
	log.Tracef("Offset layout: %d cells (%d lead) in %d columns", totalCells, leadCells, geometry.Columns)

	img := newCanvas(width, height, palette.Background)
	statusByDate := statusMap(days)

	for col := 0; col < geometry.Columns; col++ {
		for row := 0; row < geometry.Rows; row++ {
			cellIndex := col*geometry.Rows + row
			if cellIndex < leadCells {
				continue
			}
			dayIndex := cellIndex - leadCells
			if dayIndex >= daysToShow {
				break
			}

			// Cells run oldest to newest, column-major.
			date := today.AddDate(0, 0, -(daysToShow - 1 - dayIndex))
			cellColor := palette.NoData
			if status, ok := statusByDate[dateKey(date)]; ok {
				cellColor = palette.Incomplete
				if status.Completed {
					cellColor = palette.Completed
				}
			}

			cx, cy := geometry.CellCenter(col, row)
			fillCircle(img, cx, cy, geometry.DotRadius, cellColor)
		}
	}

	return img, nil
}

func renderCalendar(days []review.DayStatus, width, height int, palette theme.Palette) (*image.RGBA, error) {
	today := days[0].Date
	oldest := days[len(days)-1].Date

	// Expand to whole calendar weeks: Monday of the oldest week through
	// Sunday of the current week.
	start := oldest.AddDate(0, 0, -(isoWeekday(oldest) - 1))
	end := today.AddDate(0, 0, Rows-isoWeekday(today))
	totalCells := daysBetween(start, end) + 1

	geometry, err := ComputeGeometry(totalCells, width, height)
	if err != nil {
		return nil, err
	}
	log.Tracef("Calendar layout: %s..%s, %d cells in %d columns", dateKey(start), dateKey(end), totalCells, geometry.Columns)

	img := newCanvas(width, height, palette.Background)
	statusByDate := statusMap(days)

	for col := 0; col < geometry.Columns; col++ {
		for row := 0; row < geometry.Rows; row++ {
			cellIndex := col*geometry.Rows + row
			if cellIndex >= totalCells {
				break
			}

			date := start.AddDate(0, 0, cellIndex)
			if date.After(today) {
				continue
			}

			// Padding days before the window have no status and count as
			// incomplete, there is no separate no-data color here.
			cellColor := palette.Incomplete
			if status, ok := statusByDate[dateKey(date)]; ok && status.Completed {
				cellColor = palette.Completed
			}

			cx, cy := geometry.CellCenter(col, row)
			fillCircle(img, cx, cy, geometry.DotRadius, cellColor)
		}
	}

	return img, nil
}

func newCanvas(width, height int, background color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return img
}

// fillCircle draws a filled circle centered at (cx, cy). A non-positive
// radius draws nothing, which happens under extreme compression.
func fillCircle(img *image.RGBA, cx, cy, radius float64, c color.RGBA) {
	if radius <= 0 {
		return
	}
	minX := int(cx - radius)
	maxX := int(cx + radius + 1)
	minY := int(cy - radius)
	maxY := int(cy + radius + 1)

	bounds := img.Bounds()
	for y := max(minY, bounds.Min.Y); y < min(maxY, bounds.Max.Y); y++ {
		for x := max(minX, bounds.Min.X); x < min(maxX, bounds.Max.X); x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func statusMap(days []review.DayStatus) map[string]review.DayStatus {
	byDate := make(map[string]review.DayStatus, len(days))
	for _, day := range days {
		byDate[dateKey(day.Date)] = day
	}
	return byDate
}

func dateKey(date time.Time) string {
	return date.Format(time.DateOnly)
}

// isoWeekday returns 1 for Monday through 7 for Sunday.
func isoWeekday(date time.Time) int {
	weekday := int(date.Weekday())
	if weekday == 0 {
		return 7
	}
	return weekday
}

// daysBetween counts calendar days between two midnights, tolerating DST
// shifted days.
func daysBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}
