package config

import "log/slog"

const (
	LangEN = "en"
	LangES = "es"
)

// GetLocaleConfig returns a supported language, falling back to English.
func GetLocaleConfig(lang string) string {
	switch lang {
	case LangEN:
		return LangEN
	case LangES:
		return LangES
	case "":
		return LangEN
	default:
		slog.Warn("language not supported, using English", "language", lang)
		return LangEN
	}
}
