// Package media detects input formats and shells out to ffmpeg for audio
// extraction, concatenation, and conversion.
package media
