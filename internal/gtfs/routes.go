package gtfs

// RailRoute pairs a CTA GTFS route_id with the line name shown on the map.
type RailRoute struct {
	RouteID string
	Line    string
}

// railRoutes is the fixed route table, in processing order.
var railRoutes = [...]RailRoute{
	{RouteID: "Red", Line: "Red"},
	{RouteID: "Blue", Line: "Blue"},
	{RouteID: "Brn", Line: "Brown"},
	{RouteID: "G", Line: "Green"},
	{RouteID: "Org", Line: "Orange"},
	{RouteID: "P", Line: "Purple"},
	{RouteID: "Pink", Line: "Pink"},
	{RouteID: "Y", Line: "Yellow"},
}

// LineForRoute returns the line name for a rail route_id.
func LineForRoute(routeID string) (string, bool) {
	for _, r := range railRoutes {
		if r.RouteID == routeID {
			return r.Line, true
		}
	}
	return "", false
}
