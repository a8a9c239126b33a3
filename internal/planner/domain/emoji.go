package domain

import "strings"

// emojiShorthand maps common colon-delimited shorthand codes to their
// Unicode characters. Models occasionally emit ":tada:" style codes instead
// of literal emoji; the extractor resolves them before merging.
var emojiShorthand = map[string]string{
	"tada":            "🎉",
	"briefcase":       "💼",
	"rocket":          "🚀",
	"muscle":          "💪",
	"airplane":        "✈️",
	"calendar":        "📅",
	"memo":            "📝",
	"books":           "📚",
	"house":           "🏠",
	"car":             "🚗",
	"phone":           "📱",
	"computer":        "💻",
	"email":           "📧",
	"shopping_cart":   "🛒",
	"fork_and_knife":  "🍴",
	"pizza":           "🍕",
	"coffee":          "☕",
	"running":         "🏃",
	"weight_lifting":  "🏋️",
	"moneybag":        "💰",
	"bulb":            "💡",
	"check":           "✅",
	"white_check_mark": "✅",
	"star":            "⭐",
	"fire":            "🔥",
	"heart":           "❤️",
	"hospital":        "🏥",
	"pill":            "💊",
	"dog":             "🐕",
	"baby":            "👶",
	"gift":            "🎁",
	"birthday":        "🎂",
	"music":           "🎵",
	"art":             "🎨",
	"soccer":          "⚽",
	"bed":             "🛏️",
	"broom":           "🧹",
	"wrench":          "🔧",
	"seedling":        "🌱",
	"sun":             "☀️",
	"beach":           "🏖️",
	"mountain":        "⛰️",
	"camera":          "📷",
	"hotel":           "🏨",
	"museum":          "🏛️",
	"plate_with_cutlery": "🍽️",
}

// ResolveEmojiShorthand converts a ":code:" shorthand to its Unicode emoji.
// Literal emoji and unknown codes pass through unchanged.
func ResolveEmojiShorthand(s string) string {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 3 || !strings.HasPrefix(trimmed, ":") || !strings.HasSuffix(trimmed, ":") {
		return s
	}
	code := strings.ToLower(trimmed[1 : len(trimmed)-1])
	if emoji, ok := emojiShorthand[code]; ok {
		return emoji
	}
	return s
}
