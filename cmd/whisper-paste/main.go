package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tbit-io/whisper-paste/internal/bus"
	"github.com/tbit-io/whisper-paste/internal/config"
	"github.com/tbit-io/whisper-paste/internal/daemon"
	"github.com/tbit-io/whisper-paste/internal/deps"
	"github.com/tbit-io/whisper-paste/internal/tui"
)

func main() {
	_ = rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "whisper-paste",
	Short: "Hotkey dictation: record, transcribe, paste",
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		toggleCmd(),
		stopRecordingCmd(),
		statusCmd(),
		resultCmd(),
		versionCmd(),
		stopCmd(),
		setupCmd(),
		setKeyCmd(),
		doctorCmd(),
	)
}

func serveCmd() *cobra.Command {
	var noHotkeys bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := daemon.New(daemon.Options{Hotkeys: !noHotkeys})
			if err != nil {
				return fmt.Errorf("failed to create daemon: %w", err)
			}
			return d.Run()
		},
	}

	cmd.Flags().BoolVar(&noHotkeys, "no-hotkeys", false,
		"disable the global hotkey listener; toggle over the control socket instead")

	return cmd
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Toggle recording on/off",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('t')
			if err != nil {
				return fmt.Errorf("failed to toggle recording: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func stopRecordingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop-recording",
		Short: "Stop an active recording and transcribe it",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('x')
			if err != nil {
				return fmt.Errorf("failed to stop recording: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get current recording status",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('s')
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func resultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result",
		Short: "Print the last transcription result",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('r')
			if err != nil {
				return fmt.Errorf("failed to get result: %w", err)
			}

			quoted := strings.TrimSuffix(strings.TrimPrefix(resp, "RESULT "), "\n")
			text, err := strconv.Unquote(quoted)
			if err != nil {
				fmt.Print(resp)
				return nil
			}
			fmt.Println(text)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('v')
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('q')
			if err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive configuration setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			result, err := tui.Run(cfg)
			if err != nil {
				return fmt.Errorf("setup wizard error: %w", err)
			}

			if result.Cancelled {
				fmt.Println("Setup cancelled.")
				return nil
			}

			if err := result.Config.Validate(); err != nil {
				fmt.Printf("Configuration validation failed: %v\n", err)
				return err
			}

			if err := config.Save(result.Config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Println()
			fmt.Println("Configuration saved successfully!")
			showNextSteps(result.Config)
			return nil
		},
	}
}

func showNextSteps(cfg *config.Config) {
	fmt.Println()
	fmt.Println("Next Steps:")
	fmt.Println("1. Start the daemon: whisper-paste serve")
	fmt.Printf("2. Press %s in any text field and speak\n", strings.Join(cfg.Hotkey.Keys, "+"))
	fmt.Println("3. Press it again to stop; the transcript is pasted where your cursor is")
	fmt.Println()

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)
}

func setKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Store the OpenAI API key in the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SaveAPIKey(args[0]); err != nil {
				return fmt.Errorf("failed to save API key: %w", err)
			}
			fmt.Println("API key saved.")
			return nil
		},
	}
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check helper binaries and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Helper binaries:")
			for _, tool := range deps.Tools() {
				status := tool.Check()
				if status.Installed {
					line := fmt.Sprintf("  [x] %s - %s (%s)", tool.Name, tool.Purpose, status.Path)
					if status.Version != "" {
						line += fmt.Sprintf(" %s", status.Version)
					}
					fmt.Println(line)
				} else {
					fmt.Printf("  [ ] %s - %s (not found)\n", tool.Name, tool.Purpose)
				}
			}

			if !deps.CheckPasteHelper() {
				fmt.Println()
				fmt.Println("No paste helper found: transcripts will stay on the clipboard only.")
			}

			fmt.Println()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				fmt.Printf("Config: %v\n", err)
				return err
			}
			fmt.Println("Config: OK")
			return nil
		},
	}
}
