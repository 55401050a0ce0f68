// Command semdex builds a Wikipedia corpus and answers semantic queries.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/semdex/internal/adapters/driving/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
