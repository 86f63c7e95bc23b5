// Package ytapi fetches video metadata in batches from the YouTube Data
// API, translating quota exhaustion into a sentinel the pipeline can use
// to stop issuing requests.
package ytapi
