package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadProjects(t *testing.T) {
	t.Setenv("PROJECT_CONFIGS", `[{"id":"p1","botToken":"111:AAA","channelId":"@one"},{"id":"p2","botToken":"222:BBB","channelId":"-100999"}]`)

	projects, err := LoadProjects("")
	if err != nil {
		t.Fatalf("LoadProjects() error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(projects))
	}
	if projects[0].ID != "p1" || projects[0].BotToken != "111:AAA" || projects[0].ChannelID != "@one" {
		t.Errorf("projects[0] = %+v", projects[0])
	}
}

func TestLoadProjectsUnset(t *testing.T) {
	t.Setenv("PROJECT_CONFIGS", "")

	_, err := LoadProjects("")
	if !errors.Is(err, ErrNoProjects) {
		t.Errorf("err = %v, want ErrNoProjects", err)
	}
}

func TestLoadProjectsInvalidJSON(t *testing.T) {
	t.Setenv("PROJECT_CONFIGS", `{not json`)

	_, err := LoadProjects("")
	if !errors.Is(err, ErrBadProjects) {
		t.Errorf("err = %v, want ErrBadProjects", err)
	}
}

func TestLoadProjectsNotArray(t *testing.T) {
	t.Setenv("PROJECT_CONFIGS", `{"id":"p1"}`)

	_, err := LoadProjects("")
	if !errors.Is(err, ErrBadProjects) {
		t.Errorf("err = %v, want ErrBadProjects", err)
	}
}

func TestLoadProjectsCustomVar(t *testing.T) {
	t.Setenv("MY_PROJECTS", `[{"id":"x","botToken":"1:A","channelId":"c"}]`)

	projects, err := LoadProjects("MY_PROJECTS")
	if err != nil {
		t.Fatalf("LoadProjects() error: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "x" {
		t.Errorf("projects = %+v", projects)
	}
}

func TestFindProject(t *testing.T) {
	projects := []ProjectConfig{
		{ID: "a", BotToken: "1:A", ChannelID: "ca"},
		{ID: "b", BotToken: "2:B", ChannelID: "cb"},
	}

	p, ok := FindProject(projects, "b")
	if !ok {
		t.Fatal("FindProject(b) not found")
	}
	if p.ChannelID != "cb" {
		t.Errorf("ChannelID = %q, want %q", p.ChannelID, "cb")
	}

	if _, ok := FindProject(projects, "missing"); ok {
		t.Error("FindProject(missing) found, want not found")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Bind != "127.0.0.1:8080" {
		t.Errorf("Bind = %q, want 127.0.0.1:8080", s.Bind)
	}
	if s.TelegramAPIURL != "https://api.telegram.org" {
		t.Errorf("TelegramAPIURL = %q", s.TelegramAPIURL)
	}
	if s.ProjectsVar != DefaultProjectsVar {
		t.Errorf("ProjectsVar = %q, want %q", s.ProjectsVar, DefaultProjectsVar)
	}
	if s.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", s.ReadTimeout)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	data := "bind: 0.0.0.0:9000\nlog_level: debug\ntelegram_api_url: ${RELAY_TEST_API:-https://tg.example.com}\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Bind != "0.0.0.0:9000" {
		t.Errorf("Bind = %q, want 0.0.0.0:9000", s.Bind)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
	if s.TelegramAPIURL != "https://tg.example.com" {
		t.Errorf("TelegramAPIURL = %q, want expanded default", s.TelegramAPIURL)
	}
}

func TestLoadSettingsEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	if err := os.WriteFile(path, []byte("bind: 0.0.0.0:9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RELAY_BIND", "127.0.0.1:7777")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if s.Bind != "127.0.0.1:7777" {
		t.Errorf("Bind = %q, want env override 127.0.0.1:7777", s.Bind)
	}
}

func TestLoadSettingsUnresolvedVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	if err := os.WriteFile(path, []byte("bind: ${RELAY_TEST_MISSING_VAR}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSettings(path)
	if err == nil {
		t.Fatal("expected error for unresolved variable")
	}
	if !strings.Contains(err.Error(), "RELAY_TEST_MISSING_VAR") {
		t.Errorf("error does not name the unresolved variable: %v", err)
	}
}

func TestLoadSettingsInvalidLogLevel(t *testing.T) {
	t.Setenv("RELAY_LOG_LEVEL", "loud")

	_, err := LoadSettings("")
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestLoadSettingsInvalidAPIURL(t *testing.T) {
	t.Setenv("RELAY_TELEGRAM_API_URL", "ftp://example.com")

	_, err := LoadSettings("")
	if err == nil {
		t.Fatal("expected error for non-http API URL")
	}
}
