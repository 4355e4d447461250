package config

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/filekeeper/internal/flagx"
)

var configFlags = []string{"-a", "-t", "-s", "-c", "-config"}

// parseFlags overlays -a, -t and -s from os.Args.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the filekeeper API")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "request timeout")
	fs.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "session token file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

// Commands strips the configuration flags from args, leaving the command and
// its arguments.
func Commands(args []string) []string {
	return flagx.RemoveArgs(args, configFlags)
}
