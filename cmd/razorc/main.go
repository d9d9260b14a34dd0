package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "razorc",
		Short: "Compile razor-style templates to Go render code",
	}

	rootCmd.AddCommand(newBuildCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
