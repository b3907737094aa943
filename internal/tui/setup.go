package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/tbit-io/whisper-paste/internal/config"
	"github.com/tbit-io/whisper-paste/internal/hotkey"
)

// SetupResult holds the configuration produced by the wizard
type SetupResult struct {
	Config    *config.Config
	Cancelled bool
}

// Run starts the interactive setup wizard, pre-filled from the given
// configuration.
func Run(cfg *config.Config) (*SetupResult, error) {
	clearScreen()
	fmt.Println(Banner())
	fmt.Println()

	if err := editTranscription(cfg); err != nil {
		return &SetupResult{Cancelled: true}, nil
	}
	if err := editHotkey(cfg); err != nil {
		return &SetupResult{Cancelled: true}, nil
	}
	if err := editBehavior(cfg); err != nil {
		return &SetupResult{Cancelled: true}, nil
	}

	confirmed, err := showSummary(cfg)
	if err != nil || !confirmed {
		return &SetupResult{Cancelled: true}, nil
	}

	return &SetupResult{Config: cfg}, nil
}

func editTranscription(cfg *config.Config) error {
	apiKey := cfg.Transcription.APIKey
	model := cfg.Transcription.Model
	if model == "" {
		model = "whisper-1"
	}

	keyDesc := "Stored in the config file. Leave empty to use OPENAI_API_KEY."
	if os.Getenv("OPENAI_API_KEY") != "" {
		keyDesc = "OPENAI_API_KEY is set; leave empty to keep using it."
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API Key").
				Description(keyDesc).
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" && os.Getenv("OPENAI_API_KEY") == "" {
						return fmt.Errorf("an API key is required (or set OPENAI_API_KEY)")
					}
					return nil
				}).
				Value(&apiKey),
			huh.NewSelect[string]().
				Title("Transcription Model").
				Options(
					huh.NewOption("whisper-1 (recommended)", "whisper-1"),
					huh.NewOption("gpt-4o-transcribe", "gpt-4o-transcribe"),
					huh.NewOption("gpt-4o-mini-transcribe", "gpt-4o-mini-transcribe"),
				).
				Value(&model),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Transcription.APIKey = strings.TrimSpace(apiKey)
	cfg.Transcription.Model = model
	return nil
}

func editHotkey(cfg *config.Config) error {
	combo := strings.Join(cfg.Hotkey.Keys, "+")
	if combo == "" {
		combo = "ctrl+shift+r"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Toggle Hotkey").
				Description("Key names joined with '+', e.g. ctrl+shift+r").
				Validate(func(s string) error {
					return hotkey.ValidateKeys(ParseKeys(s))
				}).
				Value(&combo),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Hotkey.Keys = ParseKeys(combo)
	return nil
}

func editBehavior(cfg *config.Config) error {
	pasteEnabled := cfg.Paste.Enabled
	notifType := cfg.Notifications.Type
	if notifType == "" {
		notifType = "desktop"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Paste transcripts automatically?").
				Description("When disabled, transcripts are only copied to the clipboard").
				Value(&pasteEnabled),
			huh.NewSelect[string]().
				Title("Notifications").
				Options(
					huh.NewOption("Desktop notifications", "desktop"),
					huh.NewOption("Log to console only", "log"),
					huh.NewOption("None (silent)", "none"),
				).
				Value(&notifType),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Paste.Enabled = pasteEnabled
	cfg.Notifications.Type = notifType
	cfg.Notifications.Enabled = notifType != "none"
	return nil
}

func showSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Println()

	keySource := "config file"
	if cfg.Transcription.APIKey == "" {
		keySource = "OPENAI_API_KEY environment variable"
	}
	fmt.Printf("  %s %s\n", StyleLabel.Render("API key:"), keySource)
	fmt.Printf("  %s %s\n", StyleLabel.Render("Model:"), cfg.Transcription.Model)
	fmt.Printf("  %s %s\n", StyleLabel.Render("Hotkey:"), strings.Join(cfg.Hotkey.Keys, "+"))

	if cfg.Paste.Enabled {
		fmt.Printf("  %s paste into focused app\n", StyleLabel.Render("Delivery:"))
	} else {
		fmt.Printf("  %s clipboard only\n", StyleLabel.Render("Delivery:"))
	}
	fmt.Printf("  %s %s\n", StyleLabel.Render("Notifications:"), cfg.Notifications.Type)
	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}

// ParseKeys splits a user-entered combination like "ctrl+shift+r" (also
// accepting spaces or commas) into key names.
func ParseKeys(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ',' || r == ' '
	})
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, strings.ToLower(strings.TrimSpace(f)))
	}
	return keys
}
