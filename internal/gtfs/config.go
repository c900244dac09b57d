package gtfs

import "strings"

// Config describes where a static feed comes from.
type Config struct {
	// Source is an http(s) URL or a local zip path.
	Source string
}

func (config Config) isRemote() bool {
	return IsRemote(config.Source)
}

// IsRemote reports whether source must be downloaded.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
