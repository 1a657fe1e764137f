// Package git resolves which catalog repository a working tree belongs to by reading
// the URL of its origin remote.
package git
