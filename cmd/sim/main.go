// sim runs the character controller headless over an embedded level.
//
// Usage:
//
//	sim run --level flat --script demo --steps 600
//	sim levels
//	sim scripts
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagVerbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sim",
	Short: "Headless platformer motion simulator",
	Long: `sim drives a motion controller with a scripted input over a level,
using a kinematic collision world instead of the game's physics engine.

Examples:
  sim levels
  sim run --level tutorial --script demo --steps 1200
  sim run --script hop --verbose`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every step")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scriptsCmd)
}
