package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vmfs-go/vmfs-reader/internal/diag"
	"github.com/vmfs-go/vmfs-reader/internal/services"
)

var catCmd = &cobra.Command{
	Use:   "cat [image-path] [file-path]",
	Short: "Print a file's contents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCat(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(imagePath, filePath string) error {
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

	_, f, err := vol.Resolve(filePath)
	if err != nil {
		return err
	}

	_, err = diag.DumpFile(f, os.Stdout)
	return err
}
