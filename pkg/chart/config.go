package chart

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/matzehuels/applyviz/pkg/chart/donut"
	"github.com/matzehuels/applyviz/pkg/chart/flow"
	"github.com/matzehuels/applyviz/pkg/chart/label"
	"github.com/matzehuels/applyviz/pkg/errors"
	"github.com/matzehuels/applyviz/pkg/render/anim"
)

// View selects which charts a layout contains.
type View string

const (
	ViewDonut View = "donut"
	ViewFlow  View = "flow"
	ViewBoth  View = "both"
)

// LegendPosition places the legend region.
type LegendPosition string

const (
	LegendRight  LegendPosition = "right"
	LegendBottom LegendPosition = "bottom"
)

// Default configuration values.
const (
	DefaultWidth           = 640.0
	DefaultHeight          = 400.0
	DefaultInnerRadius     = 80.0
	DefaultOuterRadius     = 140.0
	DefaultLabelFontSize   = 12.0
	DefaultLegendThreshold = 4
	DefaultAnimationMs     = 800
	DefaultChartID         = "applyviz"
)

// DefaultColorScheme is the palette wedges cycle through.
var DefaultColorScheme = []string{
	"#4f46e5", "#10b981", "#f59e0b", "#ef4444",
	"#3b82f6", "#8b5cf6", "#ec4899", "#14b8a6",
}

// Config is the chart configuration surface. Field names in TOML and JSON
// follow the option names used by the tracker frontend.
type Config struct {
	View   View    `toml:"view" json:"view" validate:"omitempty,oneof=donut flow both"`
	Width  float64 `toml:"width" json:"width" validate:"gt=0,lte=20000"`
	Height float64 `toml:"height" json:"height" validate:"gt=0,lte=20000"`

	InnerRadius float64  `toml:"innerRadius" json:"innerRadius" validate:"gte=0,ltfield=OuterRadius"`
	OuterRadius float64  `toml:"outerRadius" json:"outerRadius" validate:"gt=0"`
	PadAngle    float64  `toml:"padAngle" json:"padAngle" validate:"gte=0,lt=1"`
	ColorScheme []string `toml:"colorScheme" json:"colorScheme" validate:"omitempty,dive,color"`

	ShowLabels      bool    `toml:"showLabels" json:"showLabels"`
	ShowPercentages bool    `toml:"showPercentages" json:"showPercentages"`
	MinSliceAngle   float64 `toml:"minSliceAngle" json:"minSliceAngle" validate:"gte=0,lt=6.2832"`
	LabelFontSize   float64 `toml:"labelFontSize" json:"labelFontSize" validate:"gt=0,lte=96"`

	UseLegend       bool           `toml:"useLegend" json:"useLegend"`
	LegendPosition  LegendPosition `toml:"legendPosition" json:"legendPosition" validate:"omitempty,oneof=right bottom"`
	LegendThreshold int            `toml:"legendThreshold" json:"legendThreshold" validate:"gte=0"`

	AnimationDurationMs int         `toml:"animationDurationMs" json:"animationDurationMs" validate:"gte=0,lte=60000"`
	Easing              anim.Easing `toml:"easing" json:"easing" validate:"omitempty,oneof=linear ease-in ease-out ease-in-out"`

	Stroke  flow.StrokeScale `toml:"stroke" json:"stroke"`
	ChartID string           `toml:"chartId" json:"chartId" validate:"omitempty,chartid"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		View:                ViewDonut,
		Width:               DefaultWidth,
		Height:              DefaultHeight,
		InnerRadius:         DefaultInnerRadius,
		OuterRadius:         DefaultOuterRadius,
		PadAngle:            donut.DefaultPadAngle,
		ColorScheme:         append([]string(nil), DefaultColorScheme...),
		ShowLabels:          true,
		ShowPercentages:     true,
		MinSliceAngle:       label.DefaultMinSliceAngle,
		LabelFontSize:       DefaultLabelFontSize,
		LegendPosition:      LegendRight,
		LegendThreshold:     DefaultLegendThreshold,
		AnimationDurationMs: DefaultAnimationMs,
		Easing:              anim.EaseOut,
		Stroke:              flow.DefaultStrokeScale(),
		ChartID:             DefaultChartID,
	}
}

// NewChartID returns a fresh id for scoping one rendered chart's styles.
func NewChartID() string {
	return "c-" + uuid.NewString()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		return errors.ValidateColor(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("chartid", func(fl validator.FieldLevel) bool {
		return errors.ValidateChartID(fl.Field().String()) == nil
	})
	return v
}

// Validate checks the configuration against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, formatValidationError(err), "invalid chart config")
	}
	s := c.Stroke
	if s.MinWidth < 0 || s.MaxWidth < s.MinWidth {
		return errors.New(errors.ErrCodeInvalidConfig, "stroke widths must satisfy 0 <= min_width <= max_width")
	}
	return nil
}

// formatValidationError converts validator errors to a user-friendly form.
func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "gt", "gte":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", e.Field(), e.Param()))
		case "lt", "lte":
			msgs = append(msgs, fmt.Sprintf("%s: must not exceed %s", e.Field(), e.Param()))
		case "ltfield":
			msgs = append(msgs, fmt.Sprintf("%s: must be less than %s", e.Field(), e.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s]", e.Field(), e.Param()))
		case "color":
			msgs = append(msgs, fmt.Sprintf("%s: invalid color %q", e.Field(), e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: validation failed (%s)", e.Field(), e.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// LoadConfig reads a TOML file over the defaults and validates the result.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Animation returns the declarative animation parameters for the config.
func (c Config) Animation() anim.Spec {
	return anim.Spec{
		Duration: msToDuration(c.AnimationDurationMs),
		Easing:   c.Easing,
	}
}
