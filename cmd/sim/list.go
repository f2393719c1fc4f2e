package main

import (
	"fmt"

	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List embedded levels",
	RunE:  runLevels,
}

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "List embedded input scripts",
	RunE:  runScripts,
}

func runLevels(cmd *cobra.Command, args []string) error {
	names, err := levels.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-12s  %-7s  %s\n", "NAME", "SIZE", "SOLIDS")
	for _, name := range names {
		lvl, err := levels.LoadLevelFromFS(name)
		if err != nil {
			return err
		}
		size := fmt.Sprintf("%dx%d", lvl.Width, lvl.Height)
		fmt.Fprintf(out, "  %-12s  %-7s  %d\n", name, size, len(lvl.Solids()))
	}
	return nil
}

func runScripts(cmd *cobra.Command, args []string) error {
	names, err := prefabs.ListScripts()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
