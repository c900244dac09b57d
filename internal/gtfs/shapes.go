package gtfs

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/jamespfennell/gtfs/constants"
	gtfscsv "github.com/jamespfennell/gtfs/csv"
	"github.com/paulmach/orb"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tracks.ghoststops.org/internal/logging"
)

var (
	// ErrNoShapes is returned when the feed has no shapes for any rail route.
	ErrNoShapes = errors.New("no shapes found")
	// ErrMissingTable is returned when a required table is absent from the archive.
	ErrMissingTable = errors.New("missing table in feed archive")
	// ErrMissingColumn is returned when a table lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
)

// ShapePoint is one row of shapes.txt.
type ShapePoint struct {
	Lon      float64
	Lat      float64
	Sequence int
}

// Shape is a single polyline for one route, ordered by shape_pt_sequence.
type Shape struct {
	ID      string
	RouteID string
	Coords  orb.LineString
}

// ShapesByRoute maps a rail route_id to its shapes, ordered by shape_id.
type ShapesByRoute map[string][]Shape

// Count returns the number of shapes across all routes.
func (s ShapesByRoute) Count() int {
	n := 0
	for _, shapes := range s {
		n += len(shapes)
	}
	return n
}

// Routes returns the route ids present, in fixed route-table order.
func (s ShapesByRoute) Routes() []string {
	var ids []string
	for _, r := range railRoutes {
		if _, ok := s[r.RouteID]; ok {
			ids = append(ids, r.RouteID)
		}
	}
	return ids
}

// ExtractRailShapes reads routes.txt, trips.txt and shapes.txt from the
// archive at path and returns the shapes of every rail route. A shape used
// by several rail routes is attributed to each of them. ErrNoShapes is
// returned when nothing qualifies.
func ExtractRailShapes(ctx context.Context, path string) (shapes ShapesByRoute, err error) {
	logger := logging.FromContext(ctx)

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed archive: %w", err)
	}
	defer logging.HandleDeferredError(&err, r.Close, logger, "close_feed_archive")

	rail, err := readRailRoutes(&r.Reader)
	if err != nil {
		return nil, err
	}
	logger.Info("found rail routes", slog.Any("routes", sortedKeys(rail)))

	shapeRoutes, err := readShapeRoutes(&r.Reader, rail)
	if err != nil {
		return nil, err
	}

	points, err := readShapePoints(&r.Reader, shapeRoutes)
	if err != nil {
		return nil, err
	}

	shapes = buildShapes(shapeRoutes, points)
	for _, routeID := range shapes.Routes() {
		line, _ := LineForRoute(routeID)
		logger.Info("route shapes",
			slog.String("route_id", routeID),
			slog.String("line", line),
			slog.Int("shapes", len(shapes[routeID])))
	}

	if shapes.Count() == 0 {
		return nil, ErrNoShapes
	}
	return shapes, nil
}

func readRailRoutes(archive *zip.Reader) (map[string]bool, error) {
	f, err := openTable(archive, "routes.txt")
	if err != nil {
		return nil, err
	}
	routeIDColumn := f.RequiredColumn("route_id")
	if err := missingColumns(f, "routes.txt"); err != nil {
		return nil, err
	}

	rail := map[string]bool{}
	for f.NextRow() {
		routeID := routeIDColumn.Read()
		if missing := f.MissingRowKeys(); len(missing) > 0 {
			return nil, fmt.Errorf("routes.txt: row missing %s", strings.Join(missing, ", "))
		}
		if _, ok := LineForRoute(routeID); ok {
			rail[routeID] = true
		}
	}
	return rail, closeTable(f, "routes.txt")
}

// readShapeRoutes maps each shape_id used by a rail trip to the rail routes using it.
func readShapeRoutes(archive *zip.Reader, rail map[string]bool) (map[string][]string, error) {
	f, err := openTable(archive, "trips.txt")
	if err != nil {
		return nil, err
	}
	routeIDColumn := f.RequiredColumn("route_id")
	shapeIDColumn := f.RequiredColumn("shape_id")
	if err := missingColumns(f, "trips.txt"); err != nil {
		return nil, err
	}

	seen := map[string]map[string]bool{}
	shapeRoutes := map[string][]string{}
	for f.NextRow() {
		routeID := routeIDColumn.Read()
		shapeID := shapeIDColumn.Read()
		if routeID == "" {
			return nil, fmt.Errorf("trips.txt: row missing route_id")
		}
		// trips without a shape are legal GTFS; they just draw nothing
		if !rail[routeID] || shapeID == "" {
			continue
		}
		if seen[shapeID] == nil {
			seen[shapeID] = map[string]bool{}
		}
		if !seen[shapeID][routeID] {
			seen[shapeID][routeID] = true
			shapeRoutes[shapeID] = append(shapeRoutes[shapeID], routeID)
		}
	}
	return shapeRoutes, closeTable(f, "trips.txt")
}

func readShapePoints(archive *zip.Reader, shapeRoutes map[string][]string) (map[string][]ShapePoint, error) {
	f, err := openTable(archive, "shapes.txt")
	if err != nil {
		return nil, err
	}
	shapeIDColumn := f.RequiredColumn("shape_id")
	latColumn := f.RequiredColumn("shape_pt_lat")
	lonColumn := f.RequiredColumn("shape_pt_lon")
	sequenceColumn := f.RequiredColumn("shape_pt_sequence")
	if err := missingColumns(f, "shapes.txt"); err != nil {
		return nil, err
	}

	points := map[string][]ShapePoint{}
	for row := 1; f.NextRow(); row++ {
		shapeID := shapeIDColumn.Read()
		rawLat := latColumn.Read()
		rawLon := lonColumn.Read()
		rawSeq := sequenceColumn.Read()
		if missing := f.MissingRowKeys(); len(missing) > 0 {
			return nil, fmt.Errorf("shapes.txt row %d: missing %s", row, strings.Join(missing, ", "))
		}
		if _, ok := shapeRoutes[shapeID]; !ok {
			continue
		}

		lat, err := strconv.ParseFloat(rawLat, 64)
		if err != nil {
			return nil, fmt.Errorf("shapes.txt row %d: invalid shape_pt_lat: %w", row, err)
		}
		lon, err := strconv.ParseFloat(rawLon, 64)
		if err != nil {
			return nil, fmt.Errorf("shapes.txt row %d: invalid shape_pt_lon: %w", row, err)
		}
		seq, err := strconv.Atoi(rawSeq)
		if err != nil {
			return nil, fmt.Errorf("shapes.txt row %d: invalid shape_pt_sequence: %w", row, err)
		}

		points[shapeID] = append(points[shapeID], ShapePoint{Lon: lon, Lat: lat, Sequence: seq})
	}
	return points, closeTable(f, "shapes.txt")
}

func buildShapes(shapeRoutes map[string][]string, points map[string][]ShapePoint) ShapesByRoute {
	coords := make(map[string]orb.LineString, len(points))
	for shapeID, pts := range points {
		sort.SliceStable(pts, func(i, j int) bool {
			return pts[i].Sequence < pts[j].Sequence
		})
		line := make(orb.LineString, 0, len(pts))
		for _, p := range pts {
			line = append(line, orb.Point{p.Lon, p.Lat})
		}
		coords[shapeID] = line
	}

	shapes := ShapesByRoute{}
	for _, shapeID := range sortedKeys(shapeRoutes) {
		line := coords[shapeID]
		if len(line) == 0 {
			continue
		}
		for _, routeID := range shapeRoutes[shapeID] {
			shapes[routeID] = append(shapes[routeID], Shape{
				ID:      shapeID,
				RouteID: routeID,
				Coords:  line,
			})
		}
	}
	return shapes
}

type bomStrippingReader struct {
	io.Reader
	io.Closer
}

func openTable(archive *zip.Reader, name string) (*gtfscsv.File, error) {
	var table *zip.File
	for _, f := range archive.File {
		if f.Name == name || strings.HasSuffix(f.Name, "/"+name) {
			table = f
			break
		}
	}
	if table == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingTable, name)
	}

	rc, err := table.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	decoded := transform.NewReader(rc, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	f, err := gtfscsv.New(constants.StaticFile(name), bomStrippingReader{Reader: decoded, Closer: rc})
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return f, nil
}

func missingColumns(f *gtfscsv.File, name string) error {
	if missing := f.MissingRequiredColumns(); len(missing) > 0 {
		_ = f.Close()
		return fmt.Errorf("%w: %s lacks %s", ErrMissingColumn, name, strings.Join(missing, ", "))
	}
	return nil
}

func closeTable(f *gtfscsv.File, name string) error {
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
