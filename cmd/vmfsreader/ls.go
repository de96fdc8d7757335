package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmfs-go/vmfs-reader/internal/services"
)

var lsCmd = &cobra.Command{
	Use:   "ls [image-path] [directory]",
	Short: "List the entries of a directory",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 2 {
			path = args[1]
		}
		return runLs(args[0], path)
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(imagePath, dirPath string) error {
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

	recs, err := vol.List(dirPath)
	if err != nil {
		return err
	}

	for _, rec := range recs {
		fmt.Printf("%-8d %s\n", rec.RecordID, rec.Name)
	}

	return nil
}
