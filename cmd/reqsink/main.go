package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reqsink",
	Short: "Inspect recorded request artifacts",
	Long: `reqsink inspects the artifacts produced by the request recorders.

Collections are Postman Collection v2.1 JSON files, scripts are executable
bash files of curl commands.

Examples:
  reqsink list
  reqsink show .shop_collections/shop.json
  reqsink clean --yes`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
