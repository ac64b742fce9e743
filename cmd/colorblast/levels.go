package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows the levels of the active level pack.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	pack := mustLoadLevels()

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range pack.Levels {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %-6s  %-5s  %-7s  %s\n", maxIDLen, "ID", "Size", "Colors", "Match", "Gravity", "Name")
	fmt.Printf("  %-*s  %-7s  %-6s  %-5s  %-7s  %s\n", maxIDLen, "--", "----", "------", "-----", "-------", "----")

	// Print levels
	for _, l := range pack.Levels {
		fmt.Printf("  %-*s  %-7s  %-6d  %-5d  %-7s  %s\n",
			maxIDLen, l.ID,
			fmt.Sprintf("%dx%d", l.Rows, l.Cols),
			l.Colors,
			l.Threshold(),
			l.GravityName(),
			l.Name,
		)
	}

	fmt.Println()
	fmt.Println("Run 'colorblast play <id>' to play a level.")
}
