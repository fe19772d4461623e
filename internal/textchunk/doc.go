// Package textchunk splits long text into bounded segments at sentence
// boundaries for synthesis engines with input-length limits.
package textchunk
