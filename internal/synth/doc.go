// Package synth renders translated text to speech through whichever
// synthesis tool the host provides. Backends are tried in a fixed
// preference order: espeak, pico2wave, the macOS say command, then the
// python pyttsx3 library.
package synth
