// Package models defines server-side records persisted in the database.
package models

import "time"

// RootID is the parent id of top-level records. It is never dereferenced.
const RootID = "0"

// Kind is the closed set of record types accepted at creation.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
	// KindImage is a display sub-kind of file; it holds bytes like a file.
	KindImage Kind = "image"
)

// ParseKind validates a raw type string.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindFolder, KindFile, KindImage:
		return k, true
	default:
		return "", false
	}
}

// HasContent reports whether records of this kind carry bytes.
func (k Kind) HasContent() bool {
	return k != KindFolder
}

// FileRecord describes a file or folder owned by a user. The bytes of
// non-folder records live in the content engine under ContentRef; folders
// have an empty ContentRef.
type FileRecord struct {
	ID         string
	UserID     string
	Name       string
	Type       Kind
	IsPublic   bool
	ParentID   string
	ContentRef string
	CreatedAt  time.Time
}

// IsRoot reports whether the record sits at the top level.
func (f *FileRecord) IsRoot() bool {
	return f.ParentID == RootID
}
