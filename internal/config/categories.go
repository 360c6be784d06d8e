package config

// CategoryWeights orders command categories in /help.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"🎧 Voice":        10,
	"⚙️ Settings":    50,
	"🛠️ Maintenance": 60,
}
