package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DefaultProjectsVar is the environment variable holding the project
// credential list.
const DefaultProjectsVar = "PROJECT_CONFIGS"

// ProjectConfig is one named credential set: a bot token and the channel
// it may post to, selected by the caller-supplied project identifier.
type ProjectConfig struct {
	ID        string `json:"id"`
	BotToken  string `json:"botToken"`
	ChannelID string `json:"channelId"`
}

// Sentinel errors for project configuration loading.
var (
	// ErrNoProjects indicates the configuration variable is unset or empty.
	ErrNoProjects = errors.New("config: project configuration is not set")

	// ErrBadProjects indicates the configuration variable does not decode
	// to a JSON array of project records.
	ErrBadProjects = errors.New("config: project configuration is not a JSON array")
)

// LoadProjects reads the project credential list from the named environment
// variable. It is called fresh on every request — the list is never cached,
// so a redeploy with new credentials takes effect immediately.
func LoadProjects(envVar string) ([]ProjectConfig, error) {
	if envVar == "" {
		envVar = DefaultProjectsVar
	}

	raw := os.Getenv(envVar)
	if raw == "" {
		return nil, fmt.Errorf("%w (%s)", ErrNoProjects, envVar)
	}

	var projects []ProjectConfig
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadProjects, err)
	}

	return projects, nil
}

// FindProject returns the first entry whose ID matches. A linear scan is
// deliberate: credential lists are small and carry no index.
func FindProject(projects []ProjectConfig, id string) (ProjectConfig, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return ProjectConfig{}, false
}
