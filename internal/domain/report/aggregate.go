package report

import (
	"math"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/calendar"
)

// RoundHours converts whole minutes to hours rounded to one decimal place.
func RoundHours(minutes int) float64 {
	return roundTenth(float64(minutes) / 60)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// Aggregate builds one user's summary for month from that user's records.
// Every day of the month is listed. A day counts end minus start, breaks
// included; a day missing either timestamp counts as zero. Records outside
// the month are ignored.
func Aggregate(month calendar.Month, records []attendance.Attendance, loc *time.Location) UserMonthlySummary {
	byDate := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	days := month.Days(loc)
	summary := UserMonthlySummary{Days: make([]DailyHours, 0, len(days))}

	var total float64
	for _, d := range days {
		key := attendance.DateKey(d)
		day := DailyHours{
			Date:      key,
			Weekday:   d.Weekday().String(),
			IsWeekend: calendar.IsWeekend(d),
		}

		if rec, ok := byDate[key]; ok {
			if minutes, complete := rec.WorkedMinutes(); complete {
				day.Hours = RoundHours(minutes)
				if minutes > 0 {
					summary.DaysWithWork++
				}
			}
			day.BreakHours = RoundHours(rec.BreakMinutes())
			day.IsEdited = rec.IsEdited
		}

		total += day.Hours
		summary.Days = append(summary.Days, day)
	}

	summary.TotalHours = roundTenth(total)
	return summary
}
