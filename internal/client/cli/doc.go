// Package cli implements the filekeeper command-line client.
//
// Commands can be given once on the command line, or typed into an
// interactive prompt started when no command is given:
//
//	register                           create an account
//	connect                            log in and store the session token
//	disconnect                         revoke the stored token
//	ls [-parent id] [-page n]          list a folder (root by default)
//	mkdir [-parent id] [-public] name  create a folder
//	upload [-parent id] [-public] path upload a file; images get thumbnails
//	info id                            show one record
//	publish id | unpublish id          toggle public access
//	download [-size w] [-o path] id    save file content
//	status                             show backend health
//
// The session token is kept in the configured session file so that separate
// invocations share a login.
package cli
