package main

import (
	"os"

	"lyn/cmd"
	"lyn/colors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		colors.RED.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
