package common

import (
	"fmt"
	"time"
)

// FormatTimestamp renders a wall-clock time the way the catalog displays it:
// date, 上午/下午 marker, then a 12-hour clock. Stored edit timestamps use
// this format, so it must stay stable.
func FormatTimestamp(t time.Time) string {
	period := "上午"
	hour := t.Hour() % 12
	if t.Hour() >= 12 {
		period = "下午"
	}
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d/%d/%d %s%d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), period, hour, t.Minute(), t.Second())
}
