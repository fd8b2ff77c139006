package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotube/internal/material"
	"github.com/alexiusacademia/gotube/internal/section"
)

var (
	// Geometry inputs (mm)
	evalInnerDiam float64
	evalOuterDiam float64

	// Load inputs
	evalAxialForce    float64
	evalBendingMoment float64
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a fixed tube geometry under a load",
	Long: `Compute section properties, stresses and the margin of safety for a
hollow tube of known inner and outer diameter under the given axial
force and bending moment. No optimization is performed.

Examples:
  # Check a 60/100 mm tube under 10 kN and 5 kN-m
  gotube evaluate --inner-diam 60 --outer-diam 100 --axial-force 10000 --bending-moment 5000`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	// Geometry flags
	evaluateCmd.Flags().Float64VarP(&evalInnerDiam, "inner-diam", "i", 0, "Inner diameter (mm) [required]")
	evaluateCmd.Flags().Float64VarP(&evalOuterDiam, "outer-diam", "d", 0, "Outer diameter (mm) [required]")

	// Load flags
	evaluateCmd.Flags().Float64VarP(&evalAxialForce, "axial-force", "f", 0, "Axial force (N)")
	evaluateCmd.Flags().Float64VarP(&evalBendingMoment, "bending-moment", "m", 0, "Bending moment (N-m)")

	evaluateCmd.MarkFlagRequired("inner-diam")
	evaluateCmd.MarkFlagRequired("outer-diam")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	tube := section.Tube{
		InnerDiam: evalInnerDiam / 1000,
		OuterDiam: evalOuterDiam / 1000,
	}
	if err := tube.Validate(); err != nil {
		return err
	}

	loading := section.Loading{AxialForce: evalAxialForce, BendingMoment: evalBendingMoment}
	props := section.Evaluate(tube, loading)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     TUBE SECTION EVALUATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Inner Diameter:\t%.3f mm\n", evalInnerDiam)
	fmt.Fprintf(w, "  Outer Diameter:\t%.3f mm\n", evalOuterDiam)
	fmt.Fprintf(w, "  Axial Force:\t%.1f N\n", loading.AxialForce)
	fmt.Fprintf(w, "  Bending Moment:\t%.1f N-m\n", loading.BendingMoment)
	fmt.Fprintf(w, "  Material:\t%s\n", material.Grade)
	w.Flush()
	fmt.Println()

	fmt.Println("SECTION PROPERTIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Area:\t%.6e m²\n", props.Area)
	fmt.Fprintf(w, "  Wall Thickness:\t%.3f mm\n", props.Thickness*1000)
	fmt.Fprintf(w, "  Diameter/Thickness:\t%.2f\n", props.DiamOverThickness)
	fmt.Fprintf(w, "  Moment of Inertia:\t%.6e m⁴\n", props.MomentOfInertia)
	w.Flush()
	fmt.Println()

	fmt.Println("STRESSES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Axial Stress:\t%.4e Pa\n", props.AxialStress)
	fmt.Fprintf(w, "  Bending Stress:\t%.4e Pa\n", props.BendingStress)
	fmt.Fprintf(w, "  Combined Stress:\t%.4e Pa\n", props.CombinedStress)
	fmt.Fprintf(w, "  Yield Strength:\t%.4e Pa\n", float64(material.YieldStrength))
	w.Flush()
	fmt.Println()

	fmt.Println("MARGIN OF SAFETY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if props.SafetyMargin >= 0 {
		fmt.Printf("  Safety Margin = %.4f ≥ 0 ✓\n", props.SafetyMargin)
		fmt.Println("  The section does not yield under the stated load.")
	} else {
		fmt.Printf("  Safety Margin = %.4f < 0 ✗\n", props.SafetyMargin)
		fmt.Println("  The section yields under the stated load.")
	}
	fmt.Println()

	return nil
}
