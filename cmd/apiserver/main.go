// API server entry point for the job portal.
package main

import (
	"os"

	"github.com/turtacn/JobPortal/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
