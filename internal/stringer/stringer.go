package stringer

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	printer = message.NewPrinter(language.English)
}

func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// FormatPoints groups digits, e.g. 12345 -> "12,345".
func FormatPoints(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatSigned is FormatPoints with an explicit sign for non-negative values.
func FormatSigned(n int64) string {
	if n < 0 {
		return FormatPoints(n)
	}
	return "+" + FormatPoints(n)
}

func FormatMultiplier(v int64) string {
	return "x" + strconv.FormatInt(v, 10)
}

// FormatDuration rounds d up to whole seconds, so a pending wait never shows
// as "0s".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	d = (d + time.Second - 1).Truncate(time.Second)
	return d.String()
}
