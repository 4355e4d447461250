// Package config loads runtime configuration for the filekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (struct tags, see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the filekeeper HTTP API
//	-t duration   per-request timeout
//	-s string     file holding the session token between invocations
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "timeout": "30s",
//	  "session_file": "/home/me/.config/filekeeper/session"
//	}
package config
