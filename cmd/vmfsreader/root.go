package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmfs-go/vmfs-reader/internal/config"
)

var (
	vmfsBase int64
)

var rootCmd = &cobra.Command{
	Use:   "vmfsreader",
	Short: "Read-only explorer for VMware's clustered VMFS filesystem",
	Long: `vmfsreader is a cross-platform, read-only command-line tool for
exploring VMFS volumes directly from a raw disk image or block device,
without mounting or relying on an ESXi host.

Commands:
  info        Show volume, filesystem, and meta-file bitmap details
  ls          List the entries of a directory
  cat         Print a file's contents
  heartbeat   Show the volume's heartbeat slots`,
	Version: "0.1.0-dev",
}

func init() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().Int64Var(&vmfsBase, "vmfs-base", cfg.VMFSBase,
		"offset of the volume's descriptors within the backing image")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
