package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/snappy/internal/config"
	"github.com/zhubert/snappy/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the identity store and log files",
	Long: `Deletes the local identity store directory and the debug log.
The config file is kept. It will prompt for confirmation before proceeding
unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return runCleanWithReader(cfg, os.Stdin, cmd.OutOrStdout())
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(cfg *config.Config, input io.Reader, out io.Writer) error {
	storeDir := cfg.StoreDir()
	_, statErr := os.Stat(storeDir)
	hasStore := statErr == nil
	_, statErr = os.Stat(logger.DefaultLogPath)
	hasLog := statErr == nil

	if !hasStore && !hasLog {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	fmt.Fprintln(out, "This will clean:")
	if hasStore {
		fmt.Fprintf(out, "  - identity store %s\n", storeDir)
	}
	if hasLog {
		fmt.Fprintf(out, "  - log file %s\n", logger.DefaultLogPath)
	}

	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if hasStore {
		if err := os.RemoveAll(storeDir); err != nil {
			return fmt.Errorf("error removing identity store: %w", err)
		}
		fmt.Fprintln(out, "  - identity store removed")
	}
	if hasLog {
		logsCleared, err := logger.ClearLogs()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
		}
		fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	}
	return nil
}

func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
