package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"microstack/pkg/config"
	"microstack/pkg/stack"
	"microstack/pkg/volume"
)

var volumeCmd = &cobra.Command{
	Use:   "volume [folder]",
	Short: "Import a folder and flatten it to a dense 3D volume",
	Long: `Volume imports one folder as a stack and flattens it into a dense
3D grid with physical voxel sizes. All slices must share one shape.
Optionally reports a maximum-intensity projection along an axis.`,
	Args: cobra.ExactArgs(1),
	RunE: runVolume,
}

func init() {
	f := volumeCmd.Flags()
	f.String("extension", "", "file extension to match, with or without leading dot")
	f.String("pattern", "", "glob pattern to match (wins over --extension)")
	f.Int("position", 0, "filename token index used for sorting and naming")
	f.Bool("stem-names", false, "use full filename stems as slice names")
	f.Bool("sort", true, "sort files by the name token")
	f.Bool("invert", true, "reverse the order after sorting")
	f.String("dtype", "", "numeric precision: float32 or float64")
	f.Int("skip-rows", config.SkipRowsAuto, "exact text header rows to skip (-1 probes 0..3)")
	f.String("delimiter", "", "text field delimiter (default: whitespace)")
	f.Float64("pixel-length", 0, "physical size of one pixel")
	f.String("unit", "", "unit of the pixel length")
	f.Int("workers", 0, "parallel decode workers (<2 is sequential)")
	f.Float64("z-dist", 0, "physical distance between consecutive slices")
	f.Bool("fill-z", false, "replicate slices along z until voxels are roughly cubic")
	f.String("mip", "", "report a maximum-intensity projection along axis x, y, or z")

	rootCmd.AddCommand(volumeCmd)
}

func runVolume(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyImportFlags(cmd, cfg)
	if cmd.Flags().Changed("z-dist") {
		cfg.Volume.ZDist, _ = cmd.Flags().GetFloat64("z-dist")
	}
	if cmd.Flags().Changed("fill-z") {
		cfg.Volume.FillZ, _ = cmd.Flags().GetBool("fill-z")
	}

	opts, err := cfg.ImportOptions()
	if err != nil {
		return err
	}
	if verbose {
		opts.Verbose = true
	}

	_, st, err := stack.ImportFolder(args[0], opts)
	if err != nil {
		return err
	}

	var vol *volume.Volume
	if cfg.Volume.FillZ {
		vol, err = volume.FromStackFilled(st, cfg.Volume.ZDist)
	} else {
		vol, err = volume.FromStack(st, cfg.Volume.ZDist)
	}
	if err != nil {
		return err
	}

	w, h, d := vol.Dims()
	vx, vy, vz := vol.VoxelSize()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"", "X", "Y", "Z"})
	table.Append([]string{"voxels", fmt.Sprintf("%d", w), fmt.Sprintf("%d", h), fmt.Sprintf("%d", d)})
	table.Append([]string{
		"voxel size",
		fmt.Sprintf("%.4g %s", vx, vol.Unit()),
		fmt.Sprintf("%.4g %s", vy, vol.Unit()),
		fmt.Sprintf("%.4g %s", vz, vol.Unit()),
	})
	table.Render()

	if axisName, _ := cmd.Flags().GetString("mip"); axisName != "" {
		axis, err := volume.ParseAxis(axisName)
		if err != nil {
			return err
		}
		mip, err := vol.MaxProject(axis)
		if err != nil {
			return err
		}
		r, c := mip.Dims()
		fmt.Printf("MIP along %s: %dx%d, min %.4g, max %.4g\n",
			axis, r, c, mat.Min(mip), mat.Max(mip))
	}
	return nil
}
