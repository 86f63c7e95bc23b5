// Package events loads the game schedule for dates the pipeline has seen
// in video titles, normalizing team abbreviations so downloaded files can
// be matched back to a specific game.
package events
