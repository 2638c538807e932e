package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cleanCmd := &cobra.Command{
		Use:   "clean [dir]",
		Short: "Remove recorded artifact directories",
		Args:  cobra.MaximumNArgs(1),
		Run:   runClean,
	}

	cleanCmd.Flags().BoolP("yes", "y", false, "Remove without asking")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) {
	baseDir := "."
	if len(args) > 0 {
		baseDir = args[0]
	}

	dirs, err := artifactDirs(baseDir)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Failed to scan %s: %v\n", baseDir, err)
		os.Exit(1)
	}

	if len(dirs) == 0 {
		dimColor.Println("Nothing to clean")
		return
	}

	confirmed, _ := cmd.Flags().GetBool("yes")
	if !confirmed {
		for _, dir := range dirs {
			fmt.Println(dir)
		}
		fmt.Print("Remove these directories? [y/N] ")

		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			return
		}
	}

	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			errorColor.Fprintf(os.Stderr, "Failed to remove %s: %v\n", dir, err)
			continue
		}
		fmt.Printf("Removed %s\n", dir)
	}
}
