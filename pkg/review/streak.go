package review

// Streak counts consecutive completed days walking from the most recent entry
// backwards. An incomplete first entry is skipped without breaking the streak:
// today is not over yet, so an unfinished today must not zero out yesterday's
// run. Any later incomplete entry terminates the count.
func Streak(days []DayStatus) int {
	streak := 0
	for i, day := range days {
		if day.Completed {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}
