package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmfs-go/vmfs-reader/internal/diag"
	"github.com/vmfs-go/vmfs-reader/internal/services"
)

var heartbeatActiveOnly bool

var heartbeatCmd = &cobra.Command{
	Use:   "heartbeat [image-path]",
	Short: "Show the volume's heartbeat slots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHeartbeat(args[0])
	},
}

func init() {
	heartbeatCmd.Flags().BoolVar(&heartbeatActiveOnly, "active-only", false, "show only currently held slots")
	rootCmd.AddCommand(heartbeatCmd)
}

func runHeartbeat(imagePath string) error {
	raw, err := services.OpenImage(imagePath)
	if err != nil {
		return err
	}
	defer raw.Close()

	vol, err := services.OpenVolume(raw, vmfsBase)
	if err != nil {
		return err
	}
	defer vol.Close()

	hbs, err := vol.ScanHeartbeats()
	if err != nil {
		return err
	}

	for i, hb := range hbs {
		if heartbeatActiveOnly && !hb.Active() {
			continue
		}
		fmt.Print(diag.FormatHeartbeat(i, hb))
	}

	return nil
}
