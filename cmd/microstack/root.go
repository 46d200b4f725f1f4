package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "microstack",
	Short: "Import and inspect ordered microscopy image stacks",
	Long: `microstack imports folders of 2D microscopy images (delimited text
or grayscale TIFF/PNG/JPEG), orders them deterministically by
filename-encoded tokens, and assembles them into a stack whose slices
carry provenance metadata: name, source folder, and physical pixel
length.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "microstack.yaml", "path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
