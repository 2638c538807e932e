package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reqsink/reqsink/internal/files"
	"github.com/reqsink/reqsink/pkg/collection"
)

func init() {
	showCmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Show the contents of a recorded artifact",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) {
	path := args[0]

	contents, err := os.ReadFile(path)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	if files.IsJSONType(contents) {
		showCollection(path, contents)
		return
	}
	showScript(contents)
}

func showCollection(path string, contents []byte) {
	doc := &collection.Collection{}
	if err := json.Unmarshal(contents, doc); err != nil || doc.Info == nil {
		errorColor.Fprintf(os.Stderr, "Not a collection document: %s\n", path)
		os.Exit(1)
	}

	nameColor.Println(doc.Info.Name)
	dimColor.Println(doc.Info.Description)
	fmt.Println()

	for _, item := range doc.Item {
		methodColor.Printf("%-8s", item.Request.Method)
		urlColor.Println(item.Request.URL.Raw)
		for _, header := range item.Request.Header {
			dimColor.Printf("  %s: %s\n", header.Key, header.Value)
		}
		if item.Request.Body != nil {
			fmt.Println(indent(item.Request.Body.Raw, "  "))
		}
	}
}

func showScript(contents []byte) {
	for _, line := range strings.Split(string(contents), "\n") {
		if strings.HasPrefix(line, "#") {
			dimColor.Println(line)
			continue
		}
		fmt.Println(line)
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
