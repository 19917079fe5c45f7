package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/desk-duck/config"
)

// configCmd inspects and edits persisted settings
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change saved settings",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every setting with its effective value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(environ())
		if err != nil {
			return err
		}
		for _, key := range config.Keys() {
			v, _ := store.Get(key)
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, v)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(environ())
		if err != nil {
			return err
		}
		v, err := store.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change and save one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Overrides stay out of the saved file
		store := config.NewStore(openPersistence(), logger)
		if err := store.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := store.Persist(); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

// openStore loads saved settings, then the --config file and DESKDUCK_* overrides
func openStore(env []string) (*config.Store, error) {
	store := config.NewStore(openPersistence(), logger)
	if configPath != "" {
		if err := store.LoadFile(configPath); err != nil {
			return nil, err
		}
	}
	if err := store.ApplyEnv(env); err != nil {
		return nil, err
	}
	return store, nil
}

// environ is replaced by tests
var environ = os.Environ

func openPersistence() *config.Manager {
	if noPersist {
		return nil
	}
	m, err := config.OpenPersistence(appName)
	if err != nil {
		logger.Warn("settings will not be saved", zap.Error(err))
		return nil
	}
	return m
}
