package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// profileDirectoryName is the subdirectory of the platform
	// configuration directory holding the profile.
	profileDirectoryName = "glimpse"
	// profileFileName is the persisted profile file.
	profileFileName = "glimpse.toml"
	// profileFileType tells the decoder which format the profile uses.
	profileFileType = "toml"
)

// ProfilePath returns the location of the configuration profile. The path is
// reported whether or not the file exists yet.
func ProfilePath() string {
	return filepath.Join(xdg.ConfigHome, profileDirectoryName, profileFileName)
}

// resolveProfilePath prefers an explicit override and falls back to the
// platform location.
func resolveProfilePath(explicitPath string) (string, error) {
	if explicitPath != "" {
		return explicitPath, nil
	}
	return ProfilePath(), nil
}
