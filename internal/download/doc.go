// Package download fetches broadcast audio for qualifying videos and
// files each one under a deterministic, token-parseable name built from
// the game date, the matchup, and the stream's format details.
package download
