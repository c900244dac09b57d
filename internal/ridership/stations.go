// Package ridership backfills daily entries for stations the bulk
// ridership import misses.
package ridership

// Station links a portal station_id to the local station id.
type Station struct {
	SocrataID string
	Name      string
	LocalID   string
}

var missingStations = [...]Station{
	{SocrataID: "40890", Name: "O'Hare Airport", LocalID: "5cab956320ed9c05474044fb960a87d9"},
	{SocrataID: "40930", Name: "Midway Airport", LocalID: "df19d99efac023bfd0e7e87106692777"},
	{SocrataID: "40450", Name: "95th/Dan Ryan", LocalID: "cb98f3dd10953552c2c7086c888a2e41"},
	{SocrataID: "41090", Name: "Monroe/State", LocalID: "079a1746db130de63cf5d80101770506"},
	{SocrataID: "40790", Name: "Monroe/Dearborn", LocalID: "7214e442e5e12a6187581e1b6ceeeda7"},
}

// MissingStations returns the stations to backfill, in sync order.
func MissingStations() []Station {
	out := make([]Station, len(missingStations))
	copy(out, missingStations[:])
	return out
}
