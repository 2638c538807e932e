package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List recorded collections and scripts",
		Args:  cobra.MaximumNArgs(1),
		Run:   runList,
	}

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	baseDir := "."
	if len(args) > 0 {
		baseDir = args[0]
	}

	artifacts, err := findArtifacts(baseDir)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Failed to scan %s: %v\n", baseDir, err)
		os.Exit(1)
	}

	if len(artifacts) == 0 {
		dimColor.Println("No recorded artifacts found")
		return
	}

	for _, a := range artifacts {
		items := ""
		if a.Kind == "collection" {
			if doc, err := loadCollection(a.Path); err == nil {
				items = fmt.Sprintf(" (%d items)", len(doc.Item))
			}
		}
		fmt.Printf("%-12s %s%s\n", a.Kind, a.Path, items)
	}
}
