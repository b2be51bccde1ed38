package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/dmolina-v/efield/internal/analysis"
	"github.com/dmolina-v/efield/internal/config"
	"github.com/dmolina-v/efield/internal/field"
	"github.com/dmolina-v/efield/internal/metrics"
	"github.com/dmolina-v/efield/internal/geometry"
	"github.com/dmolina-v/efield/internal/particle"
	"github.com/dmolina-v/efield/internal/sample"
	"github.com/dmolina-v/efield/internal/storage"
	"github.com/dmolina-v/efield/internal/vec"
	"github.com/dmolina-v/efield/internal/viz"
)

var (
	dataDir string
	// geometry flags
	sigma      float64
	radius     float64
	distance   float64
	width      float64
	height     float64
	nElems     int
	invertSign bool
	// particle flags
	mass   float64
	charge float64
	px, py, pz float64
	vx, vy, vz float64
	// stepping flags
	dt       float64
	maxSteps int
	// misc flags
	at         string
	resolution int
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "efield",
		Short: "electrostatic field and charged particle lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".efield", "data directory")

	fieldCmd := &cobra.Command{
		Use:   "field [kind]",
		Short: "evaluate the field at a point",
		Args:  cobra.ExactArgs(1),
		RunE:  evalField,
	}
	addGeometryFlags(fieldCmd)
	fieldCmd.Flags().StringVar(&at, "at", "0,0,1", "evaluation point x,y,z")

	sampleCmd := &cobra.Command{
		Use:   "sample [kind]",
		Short: "sample field and potential on a grid, CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  sampleGrid,
	}
	addGeometryFlags(sampleCmd)
	sampleCmd.Flags().IntVar(&resolution, "res", 0, "samples per axis (0 = derive from n)")

	runCmd := &cobra.Command{
		Use:   "run [kind]",
		Short: "run a particle trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrajectory,
	}
	addGeometryFlags(runCmd)
	addParticleFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list preset scenarios for a geometry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for kind: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [kind]",
		Short: "benchmark field evaluation across discretizations",
		Args:  cobra.ExactArgs(1),
		RunE:  benchKind,
	}

	liveCmd := &cobra.Command{
		Use:   "live [kind]",
		Short: "run a trajectory with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addGeometryFlags(liveCmd)
	addParticleFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	rootCmd.AddCommand(fieldCmd, sampleCmd, runCmd, listCmd, plotCmd, exportCmd, presetsCmd, analyzeCmd, benchCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGeometryFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&sigma, "sigma", 1e-6, "surface charge density (C/m^2)")
	cmd.Flags().Float64Var(&radius, "radius", 0, "radius (sphere, cylinder, ring)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "separation (paired geometries)")
	cmd.Flags().Float64Var(&width, "width", 0, "plate width")
	cmd.Flags().Float64Var(&height, "height", 0, "plate or cylinder height")
	cmd.Flags().IntVar(&nElems, "n", 20, "discretization resolution")
	cmd.Flags().BoolVar(&invertSign, "invert", true, "flip the sign of the second body")
}

func addParticleFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass (kg)")
	cmd.Flags().Float64Var(&charge, "charge", config.DefaultCharge, "particle charge (C)")
	cmd.Flags().Float64Var(&px, "px", 0, "initial x position")
	cmd.Flags().Float64Var(&py, "py", 0, "initial y position")
	cmd.Flags().Float64Var(&pz, "pz", 1.0, "initial z position")
	cmd.Flags().Float64Var(&vx, "vx", 0, "initial x velocity")
	cmd.Flags().Float64Var(&vy, "vy", 0, "initial y velocity")
	cmd.Flags().Float64Var(&vz, "vz", 0, "initial z velocity")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&maxSteps, "steps", config.DefaultMaxSteps, "step budget")
}

// geometryFromFlags starts from the kind's defaults and applies only
// the flags the user actually set.
func geometryFromFlags(cmd *cobra.Command, kind string) geometry.Config {
	g := geometry.Default(geometry.Kind(kind))
	if cmd.Flags().Changed("sigma") {
		g.Sigma = sigma
	}
	if cmd.Flags().Changed("radius") {
		g.Radius = radius
	}
	if cmd.Flags().Changed("distance") {
		g.Distance = distance
	}
	if cmd.Flags().Changed("width") {
		g.Width = width
	}
	if cmd.Flags().Changed("height") {
		g.Height = height
	}
	if cmd.Flags().Changed("n") {
		g.N = nElems
	}
	if cmd.Flags().Changed("invert") {
		g.InvertSign = invertSign
	}
	return g
}

func parsePoint(s string) ([3]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]float64{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var p [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("bad coordinate %q: %w", part, err)
		}
		p[i] = v
	}
	return p, nil
}

func evalField(cmd *cobra.Command, args []string) error {
	g := geometryFromFlags(cmd, args[0])
	ev, err := field.New(g)
	if err != nil {
		return err
	}

	p, err := parsePoint(at)
	if err != nil {
		return err
	}
	pos := vecOf(p)

	e := ev.At(pos)
	v := ev.PotentialAt(pos)

	fmt.Printf("kind: %s (%d elements, total charge %.6e C)\n", g.Kind, ev.NumElements(), g.TotalCharge())
	fmt.Printf("point: (%g, %g, %g)\n", pos.X, pos.Y, pos.Z)
	fmt.Printf("E: (%.6e, %.6e, %.6e) V/m\n", e.X, e.Y, e.Z)
	fmt.Printf("|E|: %.6e V/m\n", e.Norm())
	fmt.Printf("V: %.6e V\n", v)
	return nil
}

func sampleGrid(cmd *cobra.Command, args []string) error {
	g := geometryFromFlags(cmd, args[0])
	ev, err := field.New(g)
	if err != nil {
		return err
	}

	res := resolution
	if res == 0 {
		res = sample.DefaultResolution(g)
	}

	grid, err := sample.Over(ev, sample.DefaultBounds(g), res)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "z", "ex", "ey", "ez", "v"}); err != nil {
		return err
	}
	for _, pt := range grid.Points {
		row := []string{
			strconv.FormatFloat(pt.Pos.X, 'g', 12, 64),
			strconv.FormatFloat(pt.Pos.Y, 'g', 12, 64),
			strconv.FormatFloat(pt.Pos.Z, 'g', 12, 64),
			strconv.FormatFloat(pt.E.X, 'g', 12, 64),
			strconv.FormatFloat(pt.E.Y, 'g', 12, 64),
			strconv.FormatFloat(pt.E.Z, 'g', 12, 64),
			strconv.FormatFloat(pt.V, 'g', 12, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// scenarioFromFlags resolves preset, config file and flags into a
// complete scenario. CLI flags override the file, the file overrides
// the preset.
func scenarioFromFlags(cmd *cobra.Command, kind string) (*config.Config, error) {
	var cfg *config.Config

	if preset != "" {
		cfg = config.GetPreset(kind, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cfg == nil {
		cfg = config.DefaultConfig()
		cfg.Geometry.Kind = kind
		g := geometryFromFlags(cmd, kind)
		cfg.Geometry.Sigma = g.Sigma
		cfg.Geometry.Radius = g.Radius
		cfg.Geometry.Distance = g.Distance
		cfg.Geometry.Width = g.Width
		cfg.Geometry.Height = g.Height
		cfg.Geometry.N = g.N
		cfg.Geometry.InvertSign = g.InvertSign
	}

	if cmd.Flags().Changed("mass") {
		cfg.Particle.Mass = mass
	}
	if cmd.Flags().Changed("charge") {
		cfg.Particle.Charge = charge
	}
	if cmd.Flags().Changed("px") || cmd.Flags().Changed("py") || cmd.Flags().Changed("pz") {
		cfg.Particle.Pos = [3]float64{px, py, pz}
	}
	if cmd.Flags().Changed("vx") || cmd.Flags().Changed("vy") || cmd.Flags().Changed("vz") {
		cfg.Particle.Vel = [3]float64{vx, vy, vz}
	}
	if cmd.Flags().Changed("dt") {
		cfg.Stepping.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Stepping.MaxSteps = maxSteps
	}
	return cfg, nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioFromFlags(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ev, err := field.New(cfg.GeometrySpec())
	if err != nil {
		return err
	}
	stepper := particle.NewStepper(ev)

	fmt.Printf("running %s trajectory...\n", cfg.Geometry.Kind)
	start := time.Now()

	tr, err := stepper.Run(context.Background(), cfg.InitialState(), cfg.StepSpec())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	vals := metrics.Collect(tr, metrics.Defaults(ev))
	runID, err := st.Save(cfg.Geometry.Kind, cfg.StepSpec(), ev.NumElements(), tr, vals)
	if err != nil {
		return err
	}

	final := tr.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("status: %s\n", tr.Status)
	fmt.Printf("steps: %d\n", len(tr.States))
	fmt.Printf("final position: (%.4f, %.4f, %.4f)\n", final.Pos.X, final.Pos.Y, final.Pos.Z)
	fmt.Printf("final speed: %.4f m/s\n", final.Vel.Norm())
	fmt.Println("\nmetrics:")
	for name, val := range vals {
		fmt.Printf("  %s: %.6g\n", name, val)
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
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSTATUS\tSTEPS\tDT\tELEMENTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.4fs\t%d\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Status,
			run.Steps,
			run.Dt,
			run.Elements,
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

	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(tr.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(tr.States))

	series := []struct {
		caption string
		value   func(s particle.State) float64
	}{
		{"x position", func(s particle.State) float64 { return s.Pos.X }},
		{"y position", func(s particle.State) float64 { return s.Pos.Y }},
		{"z position", func(s particle.State) float64 { return s.Pos.Z }},
		{"speed", func(s particle.State) float64 { return s.Vel.Norm() }},
	}

	for _, sr := range series {
		data := make([]float64, len(tr.States))
		for i, s := range tr.States {
			data[i] = sr.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		// fall back to metadata only
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}

	cfg := particle.StepConfig{Dt: meta.Dt, MaxSteps: meta.MaxSteps}
	return storage.ExportJSONStdout(meta.Kind, cfg, tr)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(tr.States) < 4 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("kind: %s\n\n", meta.Kind)

	axes := []struct {
		caption string
		value   func(s particle.State) float64
	}{
		{"x position", func(s particle.State) float64 { return s.Pos.X }},
		{"z position", func(s particle.State) float64 { return s.Pos.Z }},
	}

	for _, ax := range axes {
		data := make([]float64, len(tr.States))
		for i, s := range tr.States {
			data[i] = ax.value(s)
		}

		ps := analysis.PowerSpectrum(data)
		plotData := ps[:len(ps)/2]
		if len(plotData) < 2 {
			continue
		}

		graph := asciigraph.Plot(plotData,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum: "+ax.caption),
		)
		fmt.Println(graph)

		freq := analysis.DominantFrequency(data, meta.Dt)
		if freq > 0 {
			fmt.Printf("dominant frequency: %.3f hz (period %.3f s)\n\n", freq, 1/freq)
		} else {
			fmt.Printf("no dominant frequency\n\n")
		}
	}

	return nil
}

func benchKind(cmd *cobra.Command, args []string) error {
	kind := args[0]

	counts := []int{10, 20, 40, 80}
	const evals = 200

	fmt.Printf("benchmarking %s field evaluation\n\n", kind)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tELEMENTS\tEVALS\tTIME\tEVALS/SEC")

	for _, n := range counts {
		g := geometry.Default(geometry.Kind(kind))
		g.N = n

		ev, err := field.New(g)
		if err != nil {
			return err
		}

		b := sample.DefaultBounds(g)
		start := time.Now()
		for i := 0; i < evals; i++ {
			frac := float64(i) / float64(evals)
			p := b.Min.Add(b.Max.Sub(b.Min).Scale(frac))
			ev.At(p)
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n",
			n, ev.NumElements(), evals, elapsed, float64(evals)/elapsed.Seconds())
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioFromFlags(cmd, args[0])
	if err != nil {
		return err
	}

	ev, err := field.New(cfg.GeometrySpec())
	if err != nil {
		return err
	}

	m := viz.NewModel(ev, cfg.InitialState(), cfg.StepSpec())
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func vecOf(p [3]float64) vec.Vec3 {
	return vec.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
