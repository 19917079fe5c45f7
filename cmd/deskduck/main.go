package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/desk-duck/diagnostics"
	"github.com/lixenwraith/desk-duck/logging"
)

// appName names the per-user settings directory
const appName = "deskduck"

var (
	configPath   string
	speechPath   string
	debug        bool
	logPath      string
	mute         bool
	audioBackend string
	count        int
	noPersist    bool

	// Logger, teed into the diagnostics mailbox so warnings surface as bubbles
	logger  *zap.Logger
	mailbox = diagnostics.NewMailbox(64)
)

// rootCmd runs the mascot in the terminal
var rootCmd = &cobra.Command{
	Use:   "deskduck",
	Short: "A desk mascot that walks, talks and bounces around your terminal",
	Long: `deskduck draws a small duck in the terminal. Drag it with the mouse and
let go to throw it; it bounces off the edges, squeaks when squeezed, wanders
around on its own and now and then says something.

Warnings and errors logged by the program are shown in its speech bubble.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		base, err := logging.New(debug, logPath)
		if err != nil {
			return err
		}
		logger = logging.Tee(base, diagnostics.NewCore(mailbox, zapcore.WarnLevel))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if count < 1 {
			return fmt.Errorf("--count must be at least 1, got %d", count)
		}
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML settings file, reloaded on change")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", logging.DefaultPath, "Debug log file")
	rootCmd.PersistentFlags().BoolVar(&noPersist, "no-persist", false, "Keep settings in memory only")

	rootCmd.Flags().StringVarP(&speechPath, "speech", "s", "", "YAML speech dataset, reloaded on change (default: bundled)")
	rootCmd.Flags().BoolVarP(&mute, "mute", "m", false, "Start with sound off")
	rootCmd.Flags().StringVar(&audioBackend, "audio-backend", "auto", "Audio backend: auto, none, speaker, pacat, pw-cat, aplay, sox, ffplay, oss")
	rootCmd.Flags().IntVarP(&count, "count", "n", 1, "Number of ducks")

	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
