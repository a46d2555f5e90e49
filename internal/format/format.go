package format

import (
	"math"
	"strconv"
	"time"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB"}

// Bytes renders a byte count in the largest base-1024 unit that keeps
// the scaled value at or above 1, rounded to two decimal places with
// trailing zeros dropped. Zero renders literally as "0 Bytes".
func Bytes(b int64) string {
	if b <= 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(b)) / math.Log(1024)))
	if i >= len(byteUnits) {
		i = len(byteUnits) - 1
	}

	scaled := math.Round(float64(b)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(scaled, 'f', -1, 64) + " " + byteUnits[i]
}

// LocalTime renders a server timestamp in the viewer's local time.
func LocalTime(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 3:04:05 PM")
}
