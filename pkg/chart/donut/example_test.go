package donut_test

import (
	"fmt"

	"github.com/matzehuels/applyviz/pkg/chart/donut"
)

func ExampleLayout() {
	pie := donut.Layout([]donut.Datum{
		{Label: "Applied", Value: 10},
		{Label: "Interviewing", Value: 8},
		{Label: "Offered", Value: 5},
		{Label: "Rejected", Value: 2},
	}, donut.DefaultOptions())

	for _, w := range pie.Wedges {
		fmt.Printf("%s %.1f%%\n", w.Datum.Label, w.DisplayPercent())
	}
	// Output:
	// Applied 40.0%
	// Interviewing 32.0%
	// Offered 20.0%
	// Rejected 8.0%
}

func ExampleLayout_empty() {
	pie := donut.Layout([]donut.Datum{{Label: "A"}, {Label: "B"}}, donut.DefaultOptions())
	fmt.Println("wedges:", len(pie.Wedges), "total:", pie.Total)
	// Output:
	// wedges: 0 total: 0
}
