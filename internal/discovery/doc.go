// Package discovery walks channels and playlists with yt-dlp to collect
// video IDs and records them in the processing backlog. Channel workers
// feed the playlist and video queues, playlist workers feed the video
// queue, and video workers batch IDs into the store. Each stage drains
// only after every stage upstream of it has finished.
package discovery
