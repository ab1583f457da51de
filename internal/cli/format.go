// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats an amount with a currency symbol and two decimals.
// e.g., ("R$", 12.345) -> "R$ 12.35"
func FormatMoney(symbol string, v float64) string {
	if symbol == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%s %.2f", symbol, v)
}

// FormatVolume formats a total volume, e.g. "70.5 L".
func FormatVolume(liters float64) string {
	return fmt.Sprintf("%.1f L", liters)
}

// FormatLiters formats a single fill's volume, e.g. "40.25L".
func FormatLiters(liters float64) string {
	return fmt.Sprintf("%.2fL", liters)
}

// FormatDistance formats kilometers, e.g. "412.0 km".
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

// FormatRatio formats a ratio or km/L figure to two decimals.
func FormatRatio(r float64) string {
	return fmt.Sprintf("%.2f", r)
}

// FormatDate formats an instant in local time as day/month/year hour:minute.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006 15:04")
}

// FormatDay formats an instant as day/month.
func FormatDay(t time.Time) string {
	return t.Local().Format("02/01")
}

// FormatMonth formats a month bucket, e.g. "03/2025".
func FormatMonth(t time.Time) string {
	return t.Format("01/2006")
}

// FormatCount adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var out strings.Builder
	head := len(s) % 3
	if head > 0 {
		out.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if out.Len() > 0 {
			out.WriteByte(',')
		}
		out.WriteString(s[i : i+3])
	}
	return out.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
