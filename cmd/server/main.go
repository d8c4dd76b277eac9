// Package main is the entry point for the adventure server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adventure-api",
	Short: "Adventure progression server",
	Long:  `Runs the adventure progression service: activity timers in Redis, player records in Postgres, commands over Discord.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
