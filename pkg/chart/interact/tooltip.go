package interact

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/applyviz/pkg/chart/flow"
)

// linkTemplates holds tooltip formats for every known link. Each takes the
// formatted value then the percentage.
var linkTemplates = map[flow.LinkKind]string{
	flow.LinkApplicationsRejected:     "%s applications rejected (%s%%)",
	flow.LinkApplicationsPending:      "%s applications awaiting a response (%s%%)",
	flow.LinkApplicationsInterviewing: "%s applications reached interviews (%s%%)",
	flow.LinkApplicationsOffers:       "%s applications turned into offers (%s%%)",
	flow.LinkOffersAccepted:           "%s offers accepted (%s%%)",
	flow.LinkOffersDeclined:           "%s offers declined (%s%%)",
	flow.LinkOffersAwaiting:           "%s offers awaiting a decision (%s%%)",
}

// FallbackText is the tooltip for elements with no template.
func FallbackText(value, percent float64) string {
	return fmt.Sprintf("%s items (%s%%)", formatValue(value), formatPercent(percent))
}

// TooltipText returns the tooltip content for e.
func TooltipText(e Element) string {
	v, p := formatValue(e.Value), formatPercent(e.Percent)
	switch e.ID.Kind {
	case KindLink:
		if tmpl, ok := linkTemplates[e.Link]; ok {
			return fmt.Sprintf(tmpl, v, p)
		}
	case KindWedge, KindLegend:
		if e.Label != "" {
			return e.Label + ": " + FallbackText(e.Value, e.Percent)
		}
	case KindNode:
		if e.Label != "" {
			return e.Label + ": " + v
		}
	}
	return FallbackText(e.Value, e.Percent)
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatPercent(p float64) string { return strconv.FormatFloat(p, 'f', 1, 64) }

// Tooltip is the floating tooltip state.
type Tooltip struct {
	Visible bool
	X, Y    float64
	Text    string
	For     ElementID
}
