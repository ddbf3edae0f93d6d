package main

import (
	"fmt"
	"os"

	"github.com/seawall-io/vpn-service/internal/config"
	"github.com/seawall-io/vpn-service/internal/console"
)

// version is injected via ldflags at build time
var version = "dev"

func main() {
	// SEAWALL_CONFIG overrides the installed config location; the
	// command grammar itself is positional and takes no flags.
	cfg, err := config.Load(os.Getenv("SEAWALL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	os.Exit(console.NewDispatcher(cfg, version).Run(os.Args))
}
