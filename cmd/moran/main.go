package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/moran/internal/analysis"
	"github.com/san-kum/moran/internal/config"
	"github.com/san-kum/moran/internal/experiment"
	"github.com/san-kum/moran/internal/storage"
	"github.com/san-kum/moran/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	freqA      float64
	advantage  float64
	size       int
	iterations int
	seed       int64
	configFile string
	preset     string
	noSave     bool
	// sweep
	sizes    []int
	iterList []int
	// analysis
	bins       int
	genMinutes float64
	// live view
	frameRate     int
	stepsPerFrame int
	// svg export
	svgWidth  int
	svgHeight int
)

// main registers the commands and executes the root command, exiting with
// status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "moran",
		Short: "moran process simulation for two genotypes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
			logrus.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".moran", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "log level (trace, debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [variant]",
		Short: "run a simulation (neutral, lifetime, mutation)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without storing the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "lifetime statistics of a lifetime run",
		Args:  cobra.ExactArgs(1),
		RunE:  lifetimeStats,
	}
	statsCmd.Flags().Float64Var(&genMinutes, "generation-minutes", config.DefaultGenMinutes, "minutes per generation")

	histCmd := &cobra.Command{
		Use:   "hist [run_id]",
		Short: "lifetime histogram of a lifetime run",
		Args:  cobra.ExactArgs(1),
		RunE:  lifetimeHist,
	}
	histCmd.Flags().IntVar(&bins, "bins", config.DefaultBins, "number of bins")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "power spectrum of the frequency trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  frequencySpectrum,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trajectory to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportRun(os.Stdout, args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "export frequency trajectory to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	sweepCmd := &cobra.Command{
		Use:   "sweep [variant]",
		Short: "run one simulation per population size",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntSliceVar(&sizes, "sizes", []int{100, 500, 2000, 5000}, "population sizes")
	sweepCmd.Flags().IntSliceVar(&iterList, "iters", nil, "iterations per size (defaults to --iterations)")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare neutral drift and the mutation variant under the same seed",
		Args:  cobra.NoArgs,
		RunE:  compareVariants,
	}
	addSimFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [variant]",
		Short: "list available presets for a variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for variant: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Printf("  %-8s freq=%.2f adv=%.2f N=%d iters=%d\n", p, cfg.FreqA, cfg.Advantage, cfg.Size, cfg.Iterations)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [variant]",
		Short: "run a simulation with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps", 50, "steps per frame")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, statsCmd, histCmd, spectrumCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, sweepCmd, compareCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&freqA, "freq", config.DefaultFreqA, "initial frequency of genotype A")
	cmd.Flags().Float64Var(&advantage, "advantage", config.DefaultAdvantage, "selective advantage of A (mutation)")
	cmd.Flags().IntVar(&size, "size", config.DefaultSize, "population size")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "number of steps")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

// changedFlags collects the simulation flags the user set explicitly.
func changedFlags(cmd *cobra.Command) *config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("freq") {
		o.FreqA = &freqA
	}
	if flags.Changed("advantage") {
		o.Advantage = &advantage
	}
	if flags.Changed("size") {
		o.Size = &size
	}
	if flags.Changed("iterations") {
		o.Iterations = &iterations
	}
	if flags.Changed("seed") {
		o.Seed = &seed
	}
	return &o
}

func simConfig(variant string) experiment.Config {
	return experiment.Config{
		Variant:    variant,
		FreqA:      freqA,
		Advantage:  advantage,
		Size:       size,
		Iterations: iterations,
		Seed:       seed,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	variant := args[0]

	var file *config.Overrides
	if configFile != "" {
		var err error
		if file, err = config.LoadOverrides(configFile); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if file.Variant != nil && *file.Variant != variant {
			logrus.Warnf("config variant %q ignored, running %q", *file.Variant, variant)
		}
	}

	resolved, err := config.Resolve(variant, preset, file, changedFlags(cmd))
	if err != nil {
		return err
	}
	freqA = resolved.FreqA
	advantage = resolved.Advantage
	size = resolved.Size
	iterations = resolved.Iterations
	if resolved.Seed != 0 {
		seed = resolved.Seed
	}

	registry := experiment.NewRegistry()
	cfg := simConfig(variant)

	logrus.Infof("running %s: freq=%.4f adv=%.4f N=%d iters=%d seed=%d",
		variant, cfg.FreqA, cfg.Advantage, cfg.Size, cfg.Iterations, cfg.Seed)

	result, err := experiment.Execute(context.Background(), registry, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("steps: %d\n", result.Steps())
	fmt.Printf("final: A=%d B=%d\n", result.Final.A, result.Final.B)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tFREQ\tADV\tN\tSTEPS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.3f\t%d\t%d\t%d\n",
			run.ID,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.FreqA,
			run.Advantage,
			run.Size,
			run.Steps,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("variant: %s\n", meta.Variant)
	fmt.Printf("samples: %d\n\n", meta.Steps)

	if meta.HasLifetimes() {
		lifetimes, err := st.LoadLifetimes(runID)
		if err != nil {
			return err
		}
		if len(lifetimes) == 0 {
			return fmt.Errorf("no data to plot")
		}
		data := make([]float64, len(lifetimes))
		for i, lt := range lifetimes {
			data[i] = float64(lt)
		}
		fmt.Println(asciigraph.Plot(analysis.Downsample(data, 80),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("lifetime at death vs step"),
		))
		return nil
	}

	counts, err := st.LoadCounts(runID)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return fmt.Errorf("no data to plot")
	}

	caption := fmt.Sprintf("genotype A (red) / B (blue), N=%d", meta.Size)
	if meta.Variant == experiment.VariantMutation {
		caption = fmt.Sprintf("mutant A (%.0f%% advantage) / wild-type B, N=%d", meta.Advantage*100, meta.Size)
	}

	graph := asciigraph.PlotMany([][]float64{
		analysis.Downsample(analysis.FrequencySeries(counts), 80),
		analysis.Downsample(invert(analysis.FrequencySeries(counts)), 80),
	},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()

	return nil
}

func invert(freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = 1 - f
	}
	return out
}

func loadLifetimeRun(runID string) (*storage.RunMetadata, []int, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	if !meta.HasLifetimes() {
		return nil, nil, fmt.Errorf("run %s is a %s run; lifetime statistics need a lifetime run", runID, meta.Variant)
	}
	lifetimes, err := st.LoadLifetimes(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, lifetimes, nil
}

func lifetimeStats(cmd *cobra.Command, args []string) error {
	meta, lifetimes, err := loadLifetimeRun(args[0])
	if err != nil {
		return err
	}

	s, err := analysis.SummarizeLifetimes(lifetimes, meta.Size)
	if err != nil {
		return err
	}

	fmt.Println("=== lifetime statistics ===")
	fmt.Printf("total deaths recorded: %d\n", s.Count)
	fmt.Printf("mean lifetime: %.2f steps\n", s.Mean)
	fmt.Printf("median lifetime: %.2f steps\n", s.Median)
	fmt.Printf("std deviation: %.2f steps\n", s.StdDev)
	fmt.Printf("min lifetime: %d\n", s.Min)
	fmt.Printf("max lifetime: %d\n", s.Max)
	fmt.Println("\n=== biological time ===")
	fmt.Printf("population size N = %d\n", s.PopulationSize)
	fmt.Printf("mean lifetime: %.2f steps = %.4f generations\n", s.Mean, s.MeanGenerations())
	fmt.Printf("at %.0f min per generation: %.2f minutes\n", genMinutes, s.MeanMinutes(genMinutes))

	return nil
}

func lifetimeHist(cmd *cobra.Command, args []string) error {
	meta, lifetimes, err := loadLifetimeRun(args[0])
	if err != nil {
		return err
	}

	hist, err := analysis.LifetimeHistogram(lifetimes, bins)
	if err != nil {
		return err
	}

	density := make([]float64, len(hist))
	cumulative := make([]float64, len(hist))
	for i, b := range hist {
		density[i] = b.Density
		cumulative[i] = b.Cumulative
	}

	fmt.Printf("lifetime distribution: %s (N=%d, %d deaths)\n\n", meta.ID, meta.Size, len(lifetimes))
	fmt.Println(asciigraph.Plot(density,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("probability density"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(cumulative,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("cumulative probability"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(analysis.LogBinCounts(hist),
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.Caption("log10 count (tail of the distribution)"),
	))
	fmt.Printf("\nbin width: %.2f steps\n", hist[0].Upper-hist[0].Lower)

	return nil
}

func frequencySpectrum(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	counts, err := st.LoadCounts(args[0])
	if err != nil {
		return err
	}

	power, err := analysis.PowerSpectrum(analysis.FrequencySeries(counts))
	if err != nil {
		return err
	}
	slope, err := analysis.SpectralSlope(power)
	if err != nil {
		return err
	}

	logPower := make([]float64, 0, len(power)-1)
	for _, p := range power[1:] {
		logPower = append(logPower, math.Log10(p+1e-300))
	}
	fmt.Println(asciigraph.Plot(analysis.Downsample(logPower, 80),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("log10 power vs frequency bin"),
	))
	fmt.Printf("\nlog-log slope: %.3f (R2 %.3f)\n", slope.Slope, slope.R2)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, storage.NewExportData(meta, nil, nil))
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if meta.HasLifetimes() {
		lifetimes, err := st.LoadLifetimes(runID)
		if err != nil {
			return err
		}
		return storage.WriteCSV(w, nil, lifetimes)
	}

	counts, err := st.LoadCounts(runID)
	if err != nil {
		return err
	}
	return storage.WriteCSV(w, counts, nil)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID, path := args[0], args[1]

	st := storage.New(dataDir)
	counts, err := st.LoadCounts(runID)
	if err != nil {
		return err
	}

	freqs := analysis.Downsample(analysis.FrequencySeries(counts), svgWidth)
	svg := storage.FrequencySVG([][]float64{freqs, invert(freqs)}, []string{"#ff4444", "#4da6ff"}, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("not enough data to draw")
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	variant := args[0]

	if len(iterList) > 0 && len(iterList) != len(sizes) {
		return fmt.Errorf("--iters needs one value per size (%d sizes, %d iters)", len(sizes), len(iterList))
	}
	entries := make([]experiment.SweepEntry, len(sizes))
	for i, n := range sizes {
		entries[i] = experiment.SweepEntry{Size: n}
		if len(iterList) > 0 {
			entries[i].Iterations = iterList[i]
		}
	}

	registry := experiment.NewRegistry()
	results, err := experiment.NewSweep(registry, entries).Run(context.Background(), simConfig(variant))
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tSTEPS\tFINAL_A\tFINAL_B\tFIXATION\tTIME\tRUN")
	for _, res := range results {
		runID := "-"
		if st != nil {
			if runID, err = st.Save(res); err != nil {
				return err
			}
		}
		fixation := "-"
		if step, ok := res.Metrics["fixation_step"]; ok && step >= 0 {
			fixation = strconv.Itoa(int(step))
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%v\t%s\n",
			res.Params.Size, res.Steps(), res.Final.A, res.Final.B, fixation, res.Elapsed, runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if variant == experiment.VariantLifetime {
		return nil
	}

	series := make([][]float64, 0, len(results))
	captions := make([]string, 0, len(results))
	for _, res := range results {
		series = append(series, analysis.Downsample(analysis.FrequencySeries(res.Counts), 80))
		captions = append(captions, fmt.Sprintf("N=%d", res.Params.Size))
	}
	fmt.Println()
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("frequency of A: "+strings.Join(captions, ", ")),
	))

	return nil
}

func compareVariants(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	cmp, err := experiment.Compare(context.Background(), registry, simConfig(experiment.VariantMutation))
	if err != nil {
		return err
	}

	fmt.Printf("matched seed %d, N=%d, freq=%.4f, advantage=%.4f, %d steps\n\n",
		seed, size, freqA, advantage, iterations)
	fmt.Printf("%-10s  %-10s  %-12s  %-14s  %-10s\n", "variant", "final_a", "slope", "fixation_step", "time_ms")
	fmt.Println(strings.Repeat("-", 64))
	for _, row := range []struct {
		res   *experiment.Result
		trend analysis.Trend
	}{
		{cmp.Neutral, cmp.NeutralTrend},
		{cmp.Mutant, cmp.MutantTrend},
	} {
		fmt.Printf("%-10s  %10d  %12.3e  %14.0f  %10.2f\n",
			row.res.Variant, row.res.Final.A, row.trend.Slope, row.res.Metrics["fixation_step"],
			float64(row.res.Elapsed.Microseconds())/1000)
	}

	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{
		analysis.Downsample(analysis.FrequencySeries(cmp.Neutral.Counts), 80),
		analysis.Downsample(analysis.FrequencySeries(cmp.Mutant.Counts), 80),
	},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption("frequency of A: neutral (blue) vs mutant (red)"),
	))

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	m, err := viz.NewModel(simConfig(args[0]), frameRate, stepsPerFrame)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
