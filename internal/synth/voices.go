package synth

// Per-backend language mappings. Each engine has its own voice naming
// convention, so the tables live here rather than in the language package.

// espeakVoice maps an ISO 639-1 code to an espeak voice name. espeak voice
// names follow the ISO codes, so codes pass through for espeak to resolve or
// reject itself.
func espeakVoice(code string) string {
	return code
}

// picoLocale maps an ISO 639-1 code to a pico2wave locale. pico2wave ships a
// fixed set of voices; unsupported languages fall back to US English.
func picoLocale(code string) string {
	switch code {
	case "en":
		return "en-US"
	case "fr":
		return "fr-FR"
	case "es":
		return "es-ES"
	case "de":
		return "de-DE"
	case "it":
		return "it-IT"
	default:
		return "en-US"
	}
}

// macVoice maps an ISO 639-1 code to a macOS say voice name, defaulting to
// the English voice.
func macVoice(code string) string {
	switch code {
	case "en":
		return "Alex"
	case "fr":
		return "Thomas"
	case "es":
		return "Juan"
	case "de":
		return "Anna"
	case "it":
		return "Alice"
	case "ja":
		return "Kyoko"
	case "zh":
		return "Tingting"
	default:
		return "Alex"
	}
}
