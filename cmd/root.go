package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gotube/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gotube",
	Short: "Hollow Steel Tube Sizing Tool",
	Long: `gotube - Go Tube Optimizer

A CLI tool that sizes a hollow cylindrical steel tube carrying an axial
force and a bending moment, minimizing cross-sectional area.

This tool helps structural engineers perform:
  - Optimal tube sizing (minimum area under load)
  - Section evaluation for a fixed geometry
  - Batch sizing from a YAML file of load cases
  - Cross-section diagrams (ASCII and image export)

The wall must satisfy a minimum thickness, a minimum margin of safety
against yield (350 MPa structural steel) and a diameter-to-thickness
ratio between 2 and 25.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gotube v%-48s║\n", version.Version)
		fmt.Println("  ║   Hollow Steel Tube Sizing Tool                           ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Sizes a hollow steel tube for an axial force and bending")
		fmt.Println("  moment, minimizing cross-sectional area.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Optimal sizing under thickness, margin and D/t constraints")
		fmt.Println("    • Section evaluation for a fixed geometry")
		fmt.Println("    • Batch sizing from a YAML load-case file")
		fmt.Println("    • Cross-section diagrams and image export")
		fmt.Println()
		fmt.Println("  Use 'gotube --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
