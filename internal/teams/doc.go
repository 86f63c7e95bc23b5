// Package teams maps Major League Baseball team names, nicknames, and
// abbreviations found in video titles to canonical three-letter retrosheet
// codes, and extracts home/away matchups from free text.
package teams
