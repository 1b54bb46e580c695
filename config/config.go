package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/urfave/cli/v2"

	"github.com/kseistrup/filenote/common"
)

// Config holds the optional defaults read from the configuration file
type Config struct {
	// Attribute is the default extended attribute name, overridden by
	// the --name flag
	Attribute string `hcl:"attribute,optional"`

	// Long makes read output include the path prefix by default
	Long bool `hcl:"long,optional"`
}

// getConfigLocations returns all standard locations where config files are searched
func getConfigLocations() []string {
	var locations []string

	// User config locations (cross-platform)
	userConfigFile, err := xdg.ConfigFile(common.AppName + ".hcl")
	if err == nil {
		locations = append(locations, userConfigFile)
	}

	userConfigDir, err := xdg.ConfigFile(common.AppName)
	if err == nil {
		locations = append(locations, filepath.Join(userConfigDir, "config.hcl"))
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		locations = append(locations, filepath.Join(homeDir, "."+common.AppName+".hcl"))
	}

	// System-wide locations (OS-specific)
	switch runtime.GOOS {
	case "windows":
		if programData := os.Getenv("ProgramData"); programData != "" {
			locations = append(locations,
				filepath.Join(programData, common.AppName, "config.hcl"),
			)
		}
	case "darwin":
		locations = append(locations,
			"/Library/Application Support/"+common.AppName+"/config.hcl",
			"/etc/"+common.AppName+".hcl",
		)
	default:
		locations = append(locations,
			"/etc/"+common.AppName+"/config.hcl",
			"/etc/"+common.AppName+".hcl",
		)
	}

	return locations
}

// FindConfigFile looks for the configuration file in standard locations
func FindConfigFile() string {
	for _, loc := range getConfigLocations() {
		if stat, err := os.Stat(loc); err == nil && stat.Mode().IsRegular() {
			return loc
		}
	}

	return ""
}

// LoadFile parses a single HCL configuration file
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	return cfg, nil
}

// LoadConfig loads the configuration from the specified file or a standard
// location. A missing configuration is not an error; all settings have
// compiled-in defaults.
func LoadConfig(c *cli.Context) (*Config, string, error) {
	path := c.String("config")
	if path == "" {
		path = FindConfigFile()
	}
	if path == "" {
		return &Config{}, "", nil
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}

	return cfg, path, nil
}
