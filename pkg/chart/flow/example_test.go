package flow_test

import (
	"fmt"

	"github.com/matzehuels/applyviz/pkg/chart/flow"
)

func ExampleCompute() {
	l := flow.Compute(flow.Funnel{Total: 100, Applied: 10, Interviewing: 15, Offered: 5}, flow.DefaultOptions(600, 400))
	for _, link := range l.Links {
		fmt.Printf("%s %.0f %.1f\n", link.Key(), link.Value, link.StrokeWidth)
	}
	// Output:
	// applications-rejected 70 21.6
	// applications-pending 10 4.8
	// applications-interviewing 15 6.2
	// applications-offers 5 3.4
	// offers-awaiting 5 3.4
}
