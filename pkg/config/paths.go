package config

import (
	"path/filepath"
)

// Paths is a struct that holds the paths used by the application.
type Paths struct {
	Base       string
	ConfigFile string
}

func NewPaths(baseDir string) Paths {
	return Paths{
		Base:       baseDir,
		ConfigFile: filepath.Join(baseDir, "reqsink.yml"),
	}
}
