package grid

import (
	"image/color"
	"testing"
	"time"

	"github.com/ankigrid/ankigrid/pkg/review"
	"github.com/ankigrid/ankigrid/pkg/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = theme.Palette{
	Completed:  color.RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF},
	Incomplete: color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
	NoData:     color.RGBA{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF},
	Background: color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF},
}

// makeDays builds a most-recent-first sequence of consecutive days ending at
// today, one flag per day starting with today.
func makeDays(today time.Time, completed ...bool) []review.DayStatus {
	days := make([]review.DayStatus, 0, len(completed))
	for i, done := range completed {
		days = append(days, review.DayStatus{Date: today.AddDate(0, 0, -i), Completed: done})
	}
	return days
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("offset")
	require.NoError(t, err)
	assert.Equal(t, ModeOffset, mode)

	mode, err = ParseMode("calendar")
	require.NoError(t, err)
	assert.Equal(t, ModeCalendar, mode)

	_, err = ParseMode("diagonal")
	assert.Error(t, err)
}

func TestRender_Offset(t *testing.T) {
	// Wednesday: two lead cells, so 15 days yield 17 cells in 3 columns.
	// On a 300x700 canvas each cell is 100px and the grid starts at the
	// origin.
	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("most recent day lands in its weekday row", func(t *testing.T) {
		completed := make([]bool, 15)
		completed[0] = true
		days := makeDays(wednesday, completed...)

		img, err := Render(days, 300, 700, ModeOffset, testPalette)
		require.NoError(t, err)

		// Today is the last cell: column 2, row 2, dot centered at (250, 250).
		assert.Equal(t, testPalette.Completed, img.RGBAAt(250, 250))
		// Yesterday sits directly above.
		assert.Equal(t, testPalette.Incomplete, img.RGBAAt(250, 150))
	})

	t.Run("lead padding cells stay background", func(t *testing.T) {
		days := makeDays(wednesday, make([]bool, 15)...)

		img, err := Render(days, 300, 700, ModeOffset, testPalette)
		require.NoError(t, err)

		// Monday and Tuesday of the first column precede the window.
		assert.Equal(t, testPalette.Background, img.RGBAAt(50, 50))
		assert.Equal(t, testPalette.Background, img.RGBAAt(50, 150))
	})

	t.Run("a day missing from the sequence renders as no-data", func(t *testing.T) {
		// Only today and the day before yesterday, leaving a gap.
		days := []review.DayStatus{
			{Date: wednesday, Completed: true},
			{Date: wednesday.AddDate(0, 0, -2), Completed: true},
		}

		// 2 lead cells + 2 days = 4 cells in one 100px column at x offset 100.
		img, err := Render(days, 300, 700, ModeOffset, testPalette)
		require.NoError(t, err)

		// Row 2 holds yesterday, which has no status.
		assert.Equal(t, testPalette.NoData, img.RGBAAt(150, 250))
		assert.Equal(t, testPalette.Completed, img.RGBAAt(150, 350))
	})
}

func TestRender_Calendar(t *testing.T) {
	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("window expands to whole weeks", func(t *testing.T) {
		// Monday through Wednesday: a single calendar week of 7 cells in one
		// 100px column.
		days := makeDays(wednesday, true, false, true)

		img, err := Render(days, 100, 700, ModeCalendar, testPalette)
		require.NoError(t, err)

		assert.Equal(t, testPalette.Completed, img.RGBAAt(50, 50))    // Monday
		assert.Equal(t, testPalette.Incomplete, img.RGBAAt(50, 150))  // Tuesday
		assert.Equal(t, testPalette.Completed, img.RGBAAt(50, 250))   // today
		assert.Equal(t, testPalette.Background, img.RGBAAt(50, 350))  // Thursday, future
		assert.Equal(t, testPalette.Background, img.RGBAAt(50, 650))  // Sunday, future
	})

	t.Run("padding days before the window count as incomplete", func(t *testing.T) {
		// Tuesday and Wednesday only: Monday is expansion padding.
		days := makeDays(wednesday, true, true)

		img, err := Render(days, 100, 700, ModeCalendar, testPalette)
		require.NoError(t, err)

		assert.Equal(t, testPalette.Incomplete, img.RGBAAt(50, 50))
		assert.Equal(t, testPalette.Completed, img.RGBAAt(50, 150))
	})
}

func TestRender_NeverFails(t *testing.T) {
	today := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	canvases := []struct{ width, height int }{
		{7, 7},
		{40, 40},
		{1050, 1050},
	}

	for _, daysToShow := range []int{MinDays, 100, MaxDays} {
		days := makeDays(today, make([]bool, daysToShow)...)
		for _, mode := range []Mode{ModeOffset, ModeCalendar} {
			for _, canvas := range canvases {
				img, err := Render(days, canvas.width, canvas.height, mode, testPalette)
				require.NoError(t, err, "days=%d mode=%s canvas=%dx%d", daysToShow, mode, canvas.width, canvas.height)
				require.NotNil(t, img)
				assert.Equal(t, canvas.width, img.Bounds().Dx())
				assert.Equal(t, canvas.height, img.Bounds().Dy())
			}
		}
	}
}

func TestRender_Errors(t *testing.T) {
	today := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	days := makeDays(today, true)

	_, err := Render(nil, 100, 100, ModeOffset, testPalette)
	assert.Error(t, err)

	_, err = Render(days, 0, 100, ModeOffset, testPalette)
	assert.Error(t, err)

	_, err = Render(days, 100, 100, Mode("spiral"), testPalette)
	assert.Error(t, err)
}
