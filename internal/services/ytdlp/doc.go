// Package ytdlp wraps the yt-dlp command line tool for listing video IDs
// from channels and playlists and for downloading broadcast audio.
package ytdlp
