package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// ProfileRegistry lists the named profiles of the shared AWS config and credentials files
type ProfileRegistry interface {
	GetProfiles() ([]string, error)
	GetRegion(profile string) (string, error)
}

type iniRegistry struct {
	cfg         *ini.File
	credentials *ini.File
}

// DefaultProfilePaths returns the shared config and credentials file locations,
// honouring AWS_CONFIG_FILE and AWS_SHARED_CREDENTIALS_FILE.
func DefaultProfilePaths() (string, string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	configPath := os.Getenv("AWS_CONFIG_FILE")
	if configPath == "" {
		configPath = filepath.Join(home, ".aws", "config")
	}
	credentialsPath := os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if credentialsPath == "" {
		credentialsPath = filepath.Join(home, ".aws", "credentials")
	}
	return configPath, credentialsPath, nil
}

// NewProfileRegistry loads both files. Missing files are treated as empty.
func NewProfileRegistry(configPath, credentialsPath string) (ProfileRegistry, error) {
	cfg, err := ini.LooseLoad(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
	}
	credentials, err := ini.LooseLoad(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", credentialsPath, err)
	}
	return &iniRegistry{cfg: cfg, credentials: credentials}, nil
}

func (r *iniRegistry) GetProfiles() ([]string, error) {
	seen := make(map[string]bool)
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			seen[strings.TrimPrefix(section.Name(), "profile ")] = true
		}
	}
	for _, section := range r.credentials.Sections() {
		if len(section.Keys()) > 0 {
			seen[section.Name()] = true
		}
	}

	profiles := make([]string, 0, len(seen))
	for name := range seen {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles, nil
}

// GetRegion returns the region configured for the profile, or an empty string
func (r *iniRegistry) GetRegion(profile string) (string, error) {
	name := "profile " + profile
	if profile == "default" {
		name = profile
	}

	section, err := r.cfg.GetSection(name)
	if err != nil {
		if _, credErr := r.credentials.GetSection(profile); credErr == nil {
			return "", nil
		}
		return "", fmt.Errorf("profile %s not found", profile)
	}
	return section.Key("region").String(), nil
}
