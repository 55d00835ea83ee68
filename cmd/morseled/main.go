package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/dbehnke/morseled/internal/config"
)

const VERSION = "1.0.0"

var (
	configFile    string
	unitFlag      uint32
	capacityFlag  uint32
	policyFlag    string
	signalFlag    string
	profileDir    string
	activeProfile interface{ Stop() }
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree and flushes the CPU profile whether or not
// the command failed
func execute(rootCmd *cobra.Command) error {
	defer stopProfile()
	return rootCmd.Execute()
}

func stopProfile() {
	if activeProfile != nil {
		activeProfile.Stop()
		activeProfile = nil
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "morseled",
		Short:         "Key text as Morse code on an LED or GPIO pin",
		Version:       VERSION,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if profileDir != "" {
				activeProfile = profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir),
					profile.NoShutdownHook, profile.Quiet)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "configuration file (.ini or .toml)")
	flags.Uint32Var(&unitFlag, "unit", 200, "base timing unit in milliseconds")
	flags.Uint32Var(&capacityFlag, "capacity", 1024, "transcript buffer capacity")
	flags.StringVar(&policyFlag, "policy", "drop", "full transcript policy: drop, block or grow")
	flags.StringVar(&signalFlag, "signal", "log", "signal drivers, comma separated: log, sysfs, gpio or none")
	flags.StringVar(&profileDir, "profile", "", "write a CPU profile to this directory")

	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// loadConfig reads the config file, if any, then applies flags the user set explicitly
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig(configFile)
	if configFile != "" {
		if err := cfg.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("unit") {
		cfg.SetUnit(unitFlag)
	}
	if flags.Changed("capacity") {
		cfg.SetTranscriptCapacity(capacityFlag)
	}
	if flags.Changed("policy") {
		cfg.SetTranscriptPolicy(policyFlag)
	}
	if flags.Changed("signal") {
		cfg.SetSignalDriver(signalFlag)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
