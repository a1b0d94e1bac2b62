package errors

import "regexp"

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// cssNameRegex matches plain CSS color keywords such as "steelblue".
var cssNameRegex = regexp.MustCompile(`^[a-z]{3,20}$`)

// ValidateColor validates a color scheme entry. Only hex colors and plain
// keyword names are accepted so values can be written into SVG attributes
// without escaping.
func ValidateColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(c) && !cssNameRegex.MatchString(c) {
		return New(ErrCodeInvalidColor, "invalid color: %q", c)
	}
	return nil
}

// chartIDRegex matches ids usable as both XML ids and CSS class prefixes.
var chartIDRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

// ValidateChartID validates a chart instance id used to scope SVG styles.
func ValidateChartID(id string) error {
	if !chartIDRegex.MatchString(id) {
		return New(ErrCodeInvalidConfig, "invalid chart id: %q", id)
	}
	return nil
}
