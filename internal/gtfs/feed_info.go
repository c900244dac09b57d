package gtfs

import (
	"fmt"
	"io"

	"github.com/jamespfennell/gtfs"
)

// RailRouteSummary counts the trips and distinct shapes of one rail route.
type RailRouteSummary struct {
	RouteID string
	Line    string
	Trips   int
	Shapes  int
}

// FeedSummary is the overview printed by the feed-info command.
type FeedSummary struct {
	Source     string
	Agencies   int
	Routes     int
	Stops      int
	Trips      int
	Shapes     int
	Warnings   int
	RailRoutes []RailRouteSummary
}

// Summarize counts the tables of a parsed feed. Rail routes are reported
// in fixed route-table order and only when the feed contains them.
func Summarize(source string, static *gtfs.Static) FeedSummary {
	summary := FeedSummary{
		Source:   source,
		Agencies: len(static.Agencies),
		Routes:   len(static.Routes),
		Stops:    len(static.Stops),
		Trips:    len(static.Trips),
		Shapes:   len(static.Shapes),
		Warnings: len(static.Warnings),
	}

	present := map[string]bool{}
	for _, route := range static.Routes {
		present[route.Id] = true
	}

	trips := map[string]int{}
	shapes := map[string]map[string]bool{}
	for _, trip := range static.Trips {
		if trip.Route == nil {
			continue
		}
		routeID := trip.Route.Id
		trips[routeID]++
		if trip.Shape != nil {
			if shapes[routeID] == nil {
				shapes[routeID] = map[string]bool{}
			}
			shapes[routeID][trip.Shape.ID] = true
		}
	}

	for _, r := range railRoutes {
		if !present[r.RouteID] {
			continue
		}
		summary.RailRoutes = append(summary.RailRoutes, RailRouteSummary{
			RouteID: r.RouteID,
			Line:    r.Line,
			Trips:   trips[r.RouteID],
			Shapes:  len(shapes[r.RouteID]),
		})
	}
	return summary
}

// PrintStatistics writes a human readable summary to w.
func (s FeedSummary) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Source: %s (Local File: %v)\n", s.Source, !IsRemote(s.Source))
	fmt.Fprintln(w, "Agencies Count: ", s.Agencies)
	fmt.Fprintln(w, "Routes Count: ", s.Routes)
	fmt.Fprintln(w, "Stops Count: ", s.Stops)
	fmt.Fprintln(w, "Trips Count: ", s.Trips)
	fmt.Fprintln(w, "Shapes Count: ", s.Shapes)
	if s.Warnings > 0 {
		fmt.Fprintln(w, "Parser Warnings: ", s.Warnings)
	}
	fmt.Fprintln(w, "Rail Routes:")
	for _, r := range s.RailRoutes {
		fmt.Fprintf(w, "  %-5s %-7s %d trips, %d shapes\n", r.RouteID, r.Line, r.Trips, r.Shapes)
	}
}
