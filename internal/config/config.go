package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tbit-io/whisper-paste/internal/audio"
	"github.com/tbit-io/whisper-paste/internal/hotkey"
	"github.com/tbit-io/whisper-paste/internal/paste"
	"github.com/tbit-io/whisper-paste/internal/transcriber"
)

type Config struct {
	Transcription TranscriptionConfig `toml:"transcription"`
	Hotkey        HotkeyConfig        `toml:"hotkey"`
	Recording     RecordingConfig     `toml:"recording"`
	Paste         PasteConfig         `toml:"paste"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type TranscriptionConfig struct {
	APIKey  string        `toml:"api_key"`
	Model   string        `toml:"model"`
	Timeout time.Duration `toml:"timeout"`
}

type HotkeyConfig struct {
	Keys         []string      `toml:"keys"`
	PollInterval time.Duration `toml:"poll_interval"`
	Debounce     time.Duration `toml:"debounce"`
}

type RecordingConfig struct {
	StopPollInterval  time.Duration `toml:"stop_poll_interval"`
	BroadcastInterval time.Duration `toml:"broadcast_interval"`
}

type PasteConfig struct {
	Enabled          bool          `toml:"enabled"`
	ClipboardDelay   time.Duration `toml:"clipboard_delay"`
	KeystrokeTimeout time.Duration `toml:"keystroke_timeout"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "log", "none"
}

func Default() *Config {
	return &Config{
		Transcription: TranscriptionConfig{
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
			Type:    "desktop",
		},
	}
}

func (c *Config) ToTranscriberConfig() transcriber.Config {
	config := transcriber.Config{
		APIKey:  c.Transcription.APIKey,
		Model:   c.Transcription.Model,
		Timeout: c.Transcription.Timeout,
	}

	if config.APIKey == "" {
		config.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return config
}

func (c *Config) ToHotkeyConfig() hotkey.Config {
	return hotkey.Config{
		Keys:         c.Hotkey.Keys,
		PollInterval: c.Hotkey.PollInterval,
		Debounce:     c.Hotkey.Debounce,
	}
}

func (c *Config) ToAudioConfig() audio.Config {
	return audio.Config{
		StopPollInterval: c.Recording.StopPollInterval,
	}
}

func (c *Config) ToPasteConfig() paste.Config {
	return paste.Config{
		ClipboardDelay:   c.Paste.ClipboardDelay,
		KeystrokeTimeout: c.Paste.KeystrokeTimeout,
	}
}

func (c *Config) Validate() error {
	// Transcription
	apiKey := c.Transcription.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("OpenAI API key required: not found in config (transcription.api_key) or environment variable (OPENAI_API_KEY)")
	}
	if c.Transcription.Model == "" {
		return fmt.Errorf("invalid transcription.model: empty")
	}
	if c.Transcription.Timeout <= 0 {
		return fmt.Errorf("invalid transcription.timeout: %v", c.Transcription.Timeout)
	}

	// Hotkey
	if len(c.Hotkey.Keys) == 0 {
		return fmt.Errorf("invalid hotkey.keys: empty")
	}
	if c.Hotkey.PollInterval <= 0 {
		return fmt.Errorf("invalid hotkey.poll_interval: %v", c.Hotkey.PollInterval)
	}
	if c.Hotkey.Debounce <= 0 {
		return fmt.Errorf("invalid hotkey.debounce: %v", c.Hotkey.Debounce)
	}

	// Recording
	if c.Recording.StopPollInterval <= 0 {
		return fmt.Errorf("invalid recording.stop_poll_interval: %v", c.Recording.StopPollInterval)
	}
	if c.Recording.BroadcastInterval <= 0 {
		return fmt.Errorf("invalid recording.broadcast_interval: %v", c.Recording.BroadcastInterval)
	}

	// Paste
	if c.Paste.ClipboardDelay < 0 {
		return fmt.Errorf("invalid paste.clipboard_delay: %v", c.Paste.ClipboardDelay)
	}
	if c.Paste.KeystrokeTimeout <= 0 {
		return fmt.Errorf("invalid paste.keystroke_timeout: %v", c.Paste.KeystrokeTimeout)
	}

	// Notifications
	validTypes := map[string]bool{"desktop": true, "log": true, "none": true}
	if !validTypes[c.Notifications.Type] {
		return fmt.Errorf("invalid notifications.type: %s (must be desktop, log, or none)", c.Notifications.Type)
	}

	return nil
}

func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	appDir := filepath.Join(configDir, "whisper-paste")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(appDir, "config.toml"), nil
}

func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Printf("Config: no config file found at %s, creating with defaults", configPath)
		if err := SaveDefaultConfig(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		log.Printf("Config: default configuration created successfully")
		return Load() // Recursively load the config, now file will exist
	}

	log.Printf("Config: loading configuration from %s", configPath)
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	log.Printf("Config: configuration loaded successfully")
	return config, nil
}

// Save writes the given configuration back to disk, replacing the file.
// Durations are written as strings ("5s", "100ms") so the file stays
// hand-editable.
func Save(config *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	keys := make([]string, len(config.Hotkey.Keys))
	for i, k := range config.Hotkey.Keys {
		keys[i] = fmt.Sprintf("%q", k)
	}

	configContent := fmt.Sprintf(`# Whisper-Paste Configuration
# Edit values as needed - changes are applied immediately without daemon restart.

[transcription]
  api_key = %q
  model = %q
  timeout = %q

[hotkey]
  keys = [%s]
  poll_interval = %q
  debounce = %q

[recording]
  stop_poll_interval = %q
  broadcast_interval = %q

[paste]
  enabled = %t
  clipboard_delay = %q
  keystroke_timeout = %q

[notifications]
  enabled = %t
  type = %q
`,
		config.Transcription.APIKey,
		config.Transcription.Model,
		config.Transcription.Timeout.String(),
		strings.Join(keys, ", "),
		config.Hotkey.PollInterval.String(),
		config.Hotkey.Debounce.String(),
		config.Recording.StopPollInterval.String(),
		config.Recording.BroadcastInterval.String(),
		config.Paste.Enabled,
		config.Paste.ClipboardDelay.String(),
		config.Paste.KeystrokeTimeout.String(),
		config.Notifications.Enabled,
		config.Notifications.Type,
	)

	if _, err := file.WriteString(configContent); err != nil {
		return fmt.Errorf("failed to write config content: %w", err)
	}

	return nil
}

// SaveAPIKey updates only the transcription API key, preserving the rest
// of the configuration on disk.
func SaveAPIKey(apiKey string) error {
	config, err := Load()
	if err != nil {
		return err
	}

	config.Transcription.APIKey = apiKey
	return Save(config)
}

func SaveDefaultConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	configContent := `# Whisper-Paste Configuration
# This file is automatically generated with defaults.
# Edit values as needed - changes are applied immediately without daemon restart.

# Speech Transcription Configuration
[transcription]
  api_key = ""                 # OpenAI API key (or set OPENAI_API_KEY environment variable)
  model = "whisper-1"          # OpenAI transcription model ("whisper-1" recommended)
  timeout = "1m"               # Maximum time to wait for a transcription response

# Global Hotkey Configuration
[hotkey]
  keys = ["ctrl", "shift", "r"] # Toggle combination (modifier names plus a letter)
  poll_interval = "30ms"        # How often keyboard state is sampled
  debounce = "500ms"            # Minimum gap between accepted toggles

# Audio Recording Configuration
[recording]
  stop_poll_interval = "50ms"   # How often an active capture checks for a stop request
  broadcast_interval = "50ms"   # How often the live waveform snapshot is published

# Paste Configuration
[paste]
  enabled = true                # Paste transcribed text into the focused application
  clipboard_delay = "100ms"     # Wait after setting the clipboard before the keystroke
  keystroke_timeout = "5s"      # Timeout for the synthetic paste keystroke

# Desktop Notification Configuration
[notifications]
  enabled = true                # Enable notifications
  type = "desktop"              # Notification type ("desktop", "log", "none")
`

	if _, err := file.WriteString(configContent); err != nil {
		return fmt.Errorf("failed to write config content: %w", err)
	}

	return nil
}
