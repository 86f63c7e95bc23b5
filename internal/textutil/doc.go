// Package textutil provides text normalization and filename sanitization
// helpers shared by the extraction and naming code.
//
// Titles and descriptions arrive from the platform with full-width
// punctuation, non-breaking spaces, and other unicode noise; Normalize
// flattens them to a plain form before date or team extraction runs.
package textutil
