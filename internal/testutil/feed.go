// Package testutil builds GTFS fixture archives for tests.
package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteFeed zips files (name to CSV content) into an archive under
// t.TempDir and returns its path.
func WriteFeed(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feed.zip")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture feed: %v", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(out)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish fixture feed: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("failed to close fixture feed: %v", err)
	}
	return path
}

// ShapeTables returns the three tables the segment pipeline reads.
func ShapeTables(routes, trips, shapes string) map[string]string {
	return map[string]string{
		"routes.txt": routes,
		"trips.txt":  trips,
		"shapes.txt": shapes,
	}
}

// TurnFeed is a single Red line shape with a sharp 90 degree turn.
func TurnFeed() map[string]string {
	return ShapeTables(
		"route_id,route_short_name,route_type\nRed,Red,1\n22,22,3\n",
		"route_id,service_id,trip_id,shape_id\nRed,W,R1,301\nRed,W,R2,301\n22,W,B1,900\n",
		"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n"+
			"301,41.910,-87.690,3\n"+
			"301,41.900,-87.700,1\n"+
			"301,41.900,-87.690,2\n"+
			"900,41.950,-87.800,1\n"+
			"900,41.960,-87.800,2\n",
	)
}

// FullFeed is a complete, parseable static feed with one agency, two rail
// routes and a bus route.
func FullFeed() map[string]string {
	return map[string]string{
		"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
			"CTA,Chicago Transit Authority,http://transitchicago.com,America/Chicago\n",
		"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
			"Red,CTA,,Red Line,1\n" +
			"Brn,CTA,,Brown Line,1\n" +
			"22,CTA,22,Clark,3\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"30001,Howard,42.019063,-87.672892\n" +
			"30002,Kimball,41.967901,-87.713065\n",
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"W,1,1,1,1,1,0,0,20240101,20241231\n",
		"trips.txt": "route_id,service_id,trip_id,shape_id\n" +
			"Red,W,R1,301\n" +
			"Red,W,R2,302\n" +
			"Brn,W,B1,401\n" +
			"22,W,C1,900\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"R1,08:00:00,08:00:00,30001,1\n" +
			"R2,09:00:00,09:00:00,30001,1\n" +
			"B1,08:00:00,08:00:00,30002,1\n" +
			"C1,08:00:00,08:00:00,30001,1\n",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
			"301,42.019,-87.672,1\n301,41.990,-87.660,2\n" +
			"302,41.990,-87.660,1\n302,42.019,-87.672,2\n" +
			"401,41.967,-87.713,1\n401,41.950,-87.680,2\n" +
			"900,41.900,-87.631,1\n900,41.950,-87.640,2\n",
	}
}
