package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexiusacademia/gotube/internal/config"
	"github.com/alexiusacademia/gotube/internal/diagram"
	"github.com/alexiusacademia/gotube/internal/material"
	"github.com/alexiusacademia/gotube/internal/optimizer"
	"github.com/alexiusacademia/gotube/internal/section"
)

var (
	// Load inputs
	optAxialForce    float64
	optBendingMoment float64

	// Constraint thresholds
	optMinMargin    float64
	optMinThickness float64

	// Batch mode
	optConfigFile string

	// Output options
	optShowDiagram bool
	optExportFile  string
	optLogLevel    string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Size a hollow tube for an axial force and bending moment",
	Long: `Find the inner and outer diameter of a hollow steel tube that minimize
cross-sectional area while carrying the given axial force and bending
moment.

The design must satisfy:
  - wall thickness >= --min-thickness (mm)
  - margin of safety against yield >= --min-margin
  - diameter-to-thickness ratio within [2, 25]

Examples:
  # Size a tube for 10 kN axial force and 5 kN-m bending moment
  gotube optimize --axial-force 10000 --bending-moment 5000 --min-margin 0.05 --min-thickness 3

  # Batch mode from a YAML file of load cases
  gotube optimize --config cases.yaml

  # Export the cross-section diagram
  gotube optimize -f 10000 -m 5000 --output section.png`,
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	// Load flags
	optimizeCmd.Flags().Float64VarP(&optAxialForce, "axial-force", "f", 0, "Axial force (N)")
	optimizeCmd.Flags().Float64VarP(&optBendingMoment, "bending-moment", "m", 0, "Bending moment (N-m)")

	// Constraint flags
	optimizeCmd.Flags().Float64Var(&optMinMargin, "min-margin", 0, "Minimum margin of safety")
	optimizeCmd.Flags().Float64Var(&optMinThickness, "min-thickness", 1, "Minimum wall thickness (mm)")

	// Batch mode
	optimizeCmd.Flags().StringVarP(&optConfigFile, "config", "c", "", "YAML file of load cases (batch mode)")

	// Output options
	optimizeCmd.Flags().BoolVar(&optShowDiagram, "diagram", false, "Show ASCII cross-section diagram")
	optimizeCmd.Flags().StringVarP(&optExportFile, "output", "o", "", "Export diagram to file (png, svg, pdf)")
	optimizeCmd.Flags().StringVar(&optLogLevel, "log-level", "", "Log solver progress (debug, info)")
}

// buildLogger creates a console zap logger at the requested level, or a
// no-op logger when no level was asked for.
func buildLogger(level string) (*zap.Logger, error) {
	if level == "" {
		return zap.NewNop(), nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return cfg.Build()
}

func runOptimize(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger(optLogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if optConfigFile != "" {
		return runBatch(logger)
	}

	loading := section.Loading{AxialForce: optAxialForce, BendingMoment: optBendingMoment}
	cfg := optimizer.DefaultConfig()
	cfg.MinSafetyMargin = optMinMargin
	cfg.MinThickness = optMinThickness

	result, err := optimizer.NewRunner(logger, loading).Run(cfg)
	if err != nil {
		return err
	}

	printOptimizationReport("", loading, cfg, result)

	if optShowDiagram {
		fmt.Println(diagram.DrawASCIITubeSection(diagramData(result)))
	}
	if optExportFile != "" {
		if err := diagram.ExportTubeDiagram(diagramData(result), optExportFile); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Printf("Diagram exported to: %s\n", optExportFile)
	}

	return nil
}

func runBatch(logger *zap.Logger) error {
	conf, err := config.LoadConfiguration(optConfigFile)
	if err != nil {
		return err
	}

	for _, c := range conf.Cases {
		loading := section.Loading{AxialForce: c.AxialForce, BendingMoment: c.BendingMoment}
		cfg := optimizer.DefaultConfig()
		cfg.MinSafetyMargin = c.MinimumSafetyMargin
		cfg.MinThickness = c.MinimumThickness

		result, err := optimizer.NewRunner(logger, loading).Run(cfg)
		if err != nil {
			return fmt.Errorf("case %s: %w", c.Name, err)
		}
		printOptimizationReport(c.Name, loading, cfg, result)
	}

	return nil
}

func diagramData(result *optimizer.Result) diagram.TubeDiagramData {
	return diagram.TubeDiagramData{
		InnerDiam:         result.InnerDiam,
		OuterDiam:         result.OuterDiam,
		Thickness:         result.Thickness,
		SafetyMargin:      result.SafetyMargin,
		DiamOverThickness: result.DiamOverThickness,
		Converged:         result.Converged,
	}
}

func printOptimizationReport(name string, loading section.Loading, cfg optimizer.Config, result *optimizer.Result) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	if name != "" {
		fmt.Printf("     TUBE SIZING - %s\n", name)
	} else {
		fmt.Println("     TUBE SIZING")
	}
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Axial Force:\t%.1f N\n", loading.AxialForce)
	fmt.Fprintf(w, "  Bending Moment:\t%.1f N-m\n", loading.BendingMoment)
	fmt.Fprintf(w, "  Material:\t%s\n", material.Grade)
	fmt.Fprintf(w, "  Min. Wall Thickness:\t%.2f mm\n", cfg.MinThickness)
	fmt.Fprintf(w, "  Min. Safety Margin:\t%.4f\n", cfg.MinSafetyMargin)
	w.Flush()
	fmt.Println()

	fmt.Println("OPTIMIZATION RESULT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("Inner Diameter: %.3f mm\n", result.InnerDiam)
	fmt.Printf("Outer Diameter: %.3f mm\n", result.OuterDiam)
	fmt.Printf("Thickness: %.3f mm\n", result.Thickness)
	fmt.Printf("Safety Margin: %.4f\n", result.SafetyMargin)
	fmt.Printf("Optimization Converged Successfully: %t\n", result.Converged)
	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Cross-Sectional Area:\t%.6e m²\n", result.Area)
	fmt.Fprintf(w, "  Diameter/Thickness:\t%.2f\n", result.DiamOverThickness)
	fmt.Fprintf(w, "  Solver Iterations:\t%d\n", result.Iterations)
	w.Flush()
	fmt.Println()

	if !result.Converged {
		fmt.Println("  ╔═════════════════════════════════════════╗")
		fmt.Println("  ║  SOLVER DID NOT CONVERGE                ║")
		fmt.Println("  ╚═════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Values above are the best iterate found; the constraints may")
		fmt.Println("  be infeasible for this load case.")
		fmt.Println()
	}
}
