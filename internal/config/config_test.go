package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// createTestConfig returns a valid configuration for testing
func createTestConfig() *Config {
	return &Config{
		Transcription: TranscriptionConfig{
			APIKey:  "test-api-key",
			Model:   "whisper-1",
			Timeout: time.Minute,
		},
		Hotkey: HotkeyConfig{
			Keys:         []string{"ctrl", "shift", "r"},
			PollInterval: 30 * time.Millisecond,
			Debounce:     500 * time.Millisecond,
		},
		Recording: RecordingConfig{
			StopPollInterval:  50 * time.Millisecond,
			BroadcastInterval: 50 * time.Millisecond,
		},
		Paste: PasteConfig{
			Enabled:          true,
			ClipboardDelay:   100 * time.Millisecond,
			KeystrokeTimeout: 5 * time.Second,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Type:    "log",
		},
	}
}

// useTempConfigDir redirects the user config directory to a temp dir so
// tests never touch the real config file.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("OPENAI_API_KEY", "")
	return dir
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.Transcription.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "empty model",
			mutate:  func(c *Config) { c.Transcription.Model = "" },
			wantErr: true,
		},
		{
			name:    "zero transcription timeout",
			mutate:  func(c *Config) { c.Transcription.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "no hotkey keys",
			mutate:  func(c *Config) { c.Hotkey.Keys = nil },
			wantErr: true,
		},
		{
			name:    "zero poll interval",
			mutate:  func(c *Config) { c.Hotkey.PollInterval = 0 },
			wantErr: true,
		},
		{
			name:    "zero debounce",
			mutate:  func(c *Config) { c.Hotkey.Debounce = 0 },
			wantErr: true,
		},
		{
			name:    "zero stop poll interval",
			mutate:  func(c *Config) { c.Recording.StopPollInterval = 0 },
			wantErr: true,
		},
		{
			name:    "zero broadcast interval",
			mutate:  func(c *Config) { c.Recording.BroadcastInterval = 0 },
			wantErr: true,
		},
		{
			name:    "negative clipboard delay",
			mutate:  func(c *Config) { c.Paste.ClipboardDelay = -time.Second },
			wantErr: true,
		},
		{
			name:    "zero keystroke timeout",
			mutate:  func(c *Config) { c.Paste.KeystrokeTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "bad notification type",
			mutate:  func(c *Config) { c.Notifications.Type = "popup" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			config := createTestConfig()
			tt.mutate(config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAcceptsAPIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	config := createTestConfig()
	config.Transcription.APIKey = ""

	if err := config.Validate(); err != nil {
		t.Errorf("Validate() with env key: %v", err)
	}
}

func TestToTranscriberConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	config := createTestConfig()
	tc := config.ToTranscriberConfig()
	if tc.APIKey != "test-api-key" {
		t.Errorf("config key not preferred, got %q", tc.APIKey)
	}
	if tc.Model != "whisper-1" || tc.Timeout != time.Minute {
		t.Errorf("unexpected transcriber config: %+v", tc)
	}

	config.Transcription.APIKey = ""
	tc = config.ToTranscriberConfig()
	if tc.APIKey != "env-key" {
		t.Errorf("env fallback not applied, got %q", tc.APIKey)
	}
}

func TestLoadCreatesDefaultConfig(t *testing.T) {
	dir := useTempConfigDir(t)

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() on fresh dir: %v", err)
	}

	path := filepath.Join(dir, "whisper-paste", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not created: %v", err)
	}

	defaults := Default()
	if config.Transcription.Model != defaults.Transcription.Model {
		t.Errorf("model = %q, want %q", config.Transcription.Model, defaults.Transcription.Model)
	}
	if config.Hotkey.Debounce != defaults.Hotkey.Debounce {
		t.Errorf("debounce = %v, want %v", config.Hotkey.Debounce, defaults.Hotkey.Debounce)
	}
	if !config.Paste.Enabled {
		t.Error("paste not enabled by default")
	}
}

func TestLoadParsesDurationsAndKeys(t *testing.T) {
	dir := useTempConfigDir(t)

	appDir := filepath.Join(dir, "whisper-paste")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatal(err)
	}

	content := `
[transcription]
  api_key = "abc"
  model = "whisper-1"
  timeout = "90s"

[hotkey]
  keys = ["ctrl", "alt", "d"]
  poll_interval = "10ms"
  debounce = "250ms"
`
	if err := os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if config.Transcription.Timeout != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", config.Transcription.Timeout)
	}
	if got := config.Hotkey.Keys; len(got) != 3 || got[2] != "d" {
		t.Errorf("keys = %v, want [ctrl alt d]", got)
	}
	if config.Hotkey.Debounce != 250*time.Millisecond {
		t.Errorf("debounce = %v, want 250ms", config.Hotkey.Debounce)
	}

	// Sections the file omits keep their defaults.
	if config.Recording.StopPollInterval != 50*time.Millisecond {
		t.Errorf("stop_poll_interval = %v, want default 50ms", config.Recording.StopPollInterval)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	useTempConfigDir(t)

	original := createTestConfig()
	original.Transcription.Timeout = 42 * time.Second
	original.Hotkey.Keys = []string{"cmd", "shift", "v"}
	original.Paste.Enabled = false

	if err := Save(original); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save: %v", err)
	}

	if loaded.Transcription.Timeout != 42*time.Second {
		t.Errorf("timeout = %v, want 42s", loaded.Transcription.Timeout)
	}
	if len(loaded.Hotkey.Keys) != 3 || loaded.Hotkey.Keys[0] != "cmd" {
		t.Errorf("keys = %v, want [cmd shift v]", loaded.Hotkey.Keys)
	}
	if loaded.Paste.Enabled {
		t.Error("paste.enabled not preserved")
	}
	if loaded.Notifications.Type != "log" {
		t.Errorf("notifications.type = %q, want log", loaded.Notifications.Type)
	}
}

func TestSaveAPIKeyPreservesRest(t *testing.T) {
	useTempConfigDir(t)

	original := createTestConfig()
	original.Hotkey.Debounce = 750 * time.Millisecond
	if err := Save(original); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	if err := SaveAPIKey("sk-new"); err != nil {
		t.Fatalf("SaveAPIKey(): %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Transcription.APIKey != "sk-new" {
		t.Errorf("api key = %q, want sk-new", loaded.Transcription.APIKey)
	}
	if loaded.Hotkey.Debounce != 750*time.Millisecond {
		t.Errorf("debounce = %v, want 750ms", loaded.Hotkey.Debounce)
	}
}

func TestDefaultConfigTemplateIsValid(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv("OPENAI_API_KEY", "env-key")

	if err := SaveDefaultConfig(); err != nil {
		t.Fatalf("SaveDefaultConfig(): %v", err)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestManagerReload(t *testing.T) {
	dir := useTempConfigDir(t)
	t.Setenv("OPENAI_API_KEY", "env-key")

	manager, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager(): %v", err)
	}

	if got := manager.GetConfig().Hotkey.Debounce; got != 500*time.Millisecond {
		t.Fatalf("initial debounce = %v, want 500ms", got)
	}

	updated := createTestConfig()
	updated.Hotkey.Debounce = 900 * time.Millisecond
	if err := Save(updated); err != nil {
		t.Fatal(err)
	}

	manager.reloadConfig()

	if got := manager.GetConfig().Hotkey.Debounce; got != 900*time.Millisecond {
		t.Errorf("debounce after reload = %v, want 900ms", got)
	}

	// Reload with a broken file keeps the previous config.
	path := filepath.Join(dir, "whisper-paste", "config.toml")
	if err := os.WriteFile(path, []byte("not toml ["), 0644); err != nil {
		t.Fatal(err)
	}
	manager.reloadConfig()

	if got := manager.GetConfig().Hotkey.Debounce; got != 900*time.Millisecond {
		t.Errorf("debounce after failed reload = %v, want 900ms", got)
	}
}

func TestGetConfigReturnsCopy(t *testing.T) {
	useTempConfigDir(t)
	t.Setenv("OPENAI_API_KEY", "env-key")

	manager, err := NewManager()
	if err != nil {
		t.Fatal(err)
	}

	first := manager.GetConfig()
	first.Transcription.Model = "mutated"

	if got := manager.GetConfig().Transcription.Model; got == "mutated" {
		t.Error("GetConfig returned shared state")
	}
}

func TestGetConfigPathLayout(t *testing.T) {
	useTempConfigDir(t)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath(): %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("whisper-paste", "config.toml")) {
		t.Errorf("unexpected config path: %s", path)
	}
}
