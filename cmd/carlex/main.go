// Copyright (c) 2026 Carlex. All rights reserved.
// Author: minh.dao.autos@gmail.com

// Command carlex is the operator CLI for the Carlex catalog: batch jobs
// that resolve scraped vehicle appearances against the catalog, collapse
// duplicates, clean scraped text, plus seeding, migrations, and reports.
//
// No business logic lives here. Each subcommand wires configuration,
// storage, and a job together and prints the run summary.
package main

import (
	"fmt"
	"os"

	"github.com/minhdao/carlex/cmd/carlex/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
