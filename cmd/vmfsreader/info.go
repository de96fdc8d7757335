package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmfs-go/vmfs-reader/internal/diag"
	"github.com/vmfs-go/vmfs-reader/internal/services"
	"github.com/vmfs-go/vmfs-reader/internal/types"
)

var infoCmd = &cobra.Command{
	Use:   "info [image-path]",
	Short: "Show volume, filesystem, and meta-file bitmap details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInfo(args[0])
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(imagePath string) error {
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

	fmt.Print(diag.FormatVolumeInfo(vol.VolInfo))
	fmt.Print(diag.FormatFSInfo(vol.FSInfo))

	for _, name := range []string{types.FBBFileName, types.FDCFileName, types.PBCFileName, types.SBCFileName} {
		if bmh, ok := vol.MetaFileBitmap(name); ok {
			fmt.Print(diag.FormatBitmapHeader(name, bmh))
		}
	}

	return nil
}
