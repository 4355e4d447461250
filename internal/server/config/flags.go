package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/filekeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":5000")
//	-g string     gRPC health bind address; empty disables it
//	-d string     PostgreSQL DSN; empty selects the in-memory store
//	-r string     Redis address
//	-s string     storage backend: disk or s3
//	-f string     content directory for the disk backend
//	-t duration   session token lifetime (e.g., "24h")
//	-p int        listing page size
//	-l string     log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so the -c/-config flag and unknown flags are ignored here.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-r", "-s", "-f", "-t", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port to run server")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "gRPC health address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend (disk|s3)")
	fs.StringVar(&config.FolderPath, "f", config.FolderPath, "folder for stored files")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "session token lifetime")
	fs.IntVar(&config.PageSize, "p", config.PageSize, "listing page size")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
