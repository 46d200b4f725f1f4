package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"microstack/pkg/config"
	"microstack/pkg/stack"
)

var importCmd = &cobra.Command{
	Use:   "import [folder...]",
	Short: "Import one or more folders as an ordered stack",
	Long: `Import discovers matching files in each folder, orders them by the
configured filename token, decodes them, and reports the assembled
stack. Several folders flatten into one stack in folder-visit order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.String("extension", "", "file extension to match, with or without leading dot")
	f.String("pattern", "", "glob pattern to match (wins over --extension)")
	f.Int("position", 0, "filename token index used for sorting and naming")
	f.IntSlice("positions", nil, "per-folder token index list (must match folder count)")
	f.Bool("stem-names", false, "use full filename stems as slice names")
	f.Bool("sort", true, "sort files by the name token")
	f.Bool("invert", true, "reverse the order after sorting")
	f.String("dtype", "", "numeric precision: float32 or float64")
	f.Int("skip-rows", config.SkipRowsAuto, "exact text header rows to skip (-1 probes 0..3)")
	f.String("delimiter", "", "text field delimiter (default: whitespace)")
	f.Float64("pixel-length", 0, "physical size of one pixel")
	f.String("unit", "", "unit of the pixel length")
	f.Int("workers", 0, "parallel decode workers (<2 is sequential)")
	f.Bool("stats", false, "print per-slice intensity statistics")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyImportFlags(cmd, cfg)

	opts, err := cfg.ImportOptions()
	if err != nil {
		return err
	}
	if verbose {
		opts.Verbose = true
	}

	var positions []int
	if cmd.Flags().Changed("positions") {
		positions, _ = cmd.Flags().GetIntSlice("positions")
	}

	res, err := stack.ImportFolders(args, positions, opts)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Folder", "Slices", "Names"})
	for _, key := range res.Keys {
		names := res.Names[key]
		table.Append([]string{key, fmt.Sprintf("%d", len(names)), previewNames(names)})
	}
	table.SetFooter([]string{"total", fmt.Sprintf("%d", res.Stack.Len()), ""})
	table.Render()

	if show, _ := cmd.Flags().GetBool("stats"); show {
		printStats(res.Stack)
	}
	return nil
}

func applyImportFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("extension") {
		cfg.Import.FnameExtension, _ = f.GetString("extension")
	}
	if f.Changed("pattern") {
		cfg.Import.FnamePattern, _ = f.GetString("pattern")
	}
	if f.Changed("position") {
		cfg.Import.ImgnamePosition, _ = f.GetInt("position")
	}
	if f.Changed("stem-names") {
		cfg.Import.StemNames, _ = f.GetBool("stem-names")
	}
	if f.Changed("sort") {
		cfg.Import.Sort, _ = f.GetBool("sort")
	}
	if f.Changed("invert") {
		cfg.Import.InvertOrder, _ = f.GetBool("invert")
	}
	if f.Changed("dtype") {
		cfg.Import.DType, _ = f.GetString("dtype")
	}
	if f.Changed("skip-rows") {
		cfg.Import.SkipRows, _ = f.GetInt("skip-rows")
	}
	if f.Changed("delimiter") {
		cfg.Import.Delimiter, _ = f.GetString("delimiter")
	}
	if f.Changed("pixel-length") {
		cfg.Meta.PixelLength, _ = f.GetFloat64("pixel-length")
	}
	if f.Changed("unit") {
		cfg.Meta.Unit, _ = f.GetString("unit")
	}
	if f.Changed("workers") {
		cfg.Import.Workers, _ = f.GetInt("workers")
	}
}

func printStats(st *stack.Stack) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Folder", "Shape", "Min", "Mean", "Max", "StdDev"})
	slices := st.Slices()
	for i, s := range st.Stats() {
		table.Append([]string{
			s.Name,
			slices[i].Folder(),
			fmt.Sprintf("%dx%d", s.Rows, s.Cols),
			fmt.Sprintf("%.4g", s.Min),
			fmt.Sprintf("%.4g", s.Mean),
			fmt.Sprintf("%.4g", s.Max),
			fmt.Sprintf("%.4g", s.StdDev),
		})
	}
	table.Render()
}

// previewNames keeps the table narrow for large stacks.
func previewNames(names []string) string {
	if len(names) <= 6 {
		return strings.Join(names, ", ")
	}
	head := strings.Join(names[:3], ", ")
	tail := strings.Join(names[len(names)-2:], ", ")
	return fmt.Sprintf("%s, … %s", head, tail)
}
