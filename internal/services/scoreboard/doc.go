// Package scoreboard fetches the big-league game schedule for a single
// date from the public scoreboard API.
package scoreboard
