// Package dbid converts between the string ids used by services and the
// BIGSERIAL keys stored in Postgres. Conversion happens only at the
// repository boundary.
package dbid

import "strconv"

// Parse converts a record id. Only positive integers are valid record ids.
func Parse(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParseParent converts a parent id, where "0" (root) is also valid.
func ParseParent(id string) (int64, bool) {
	if id == "0" {
		return 0, true
	}
	return Parse(id)
}

// Format renders a stored key as a service-level id.
func Format(n int64) string {
	return strconv.FormatInt(n, 10)
}
