package sink

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"time"
)

const fontCharWidth = 0.6

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// TextWidth estimates the rendered width of s at fontSize.
func TextWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * fontCharWidth
}

// Truncate shortens s so it fits in width at fontSize.
func Truncate(s string, width, fontSize float64) string {
	r := []rune(s)
	maxChars := max(3, int(width/(fontSize*fontCharWidth)))
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars-2]) + ".."
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64) + "s"
}
