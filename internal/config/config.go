package config

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/keshon/voice-follow/internal/follow"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// FollowDefaults seeds follow options for guilds that have never changed them.
type FollowDefaults struct {
	ManualOnly      bool `env:"MANUAL_ONLY" envDefault:"false"`
	AutoMoveBack    bool `env:"AUTO_MOVE_BACK" envDefault:"false"`
	ChannelFull     bool `env:"CHANNEL_FULL" envDefault:"true"`
	FollowLeave     bool `env:"LEAVE" envDefault:"false"`
	ExecuteOnFollow bool `env:"EXECUTE_ON_FOLLOW" envDefault:"true"`
}

// Settings turns the defaults into the follow state of a guild nobody follows in yet.
func (f FollowDefaults) Settings() follow.Settings {
	return follow.Settings{
		ManualOnly:      f.ManualOnly,
		AutoMoveBack:    f.AutoMoveBack,
		ChannelFull:     f.ChannelFull,
		FollowLeave:     f.FollowLeave,
		ExecuteOnFollow: f.ExecuteOnFollow,
	}
}

// StorageConfig is everything needed to open the datastore, shared by the bot and the CLI.
type StorageConfig struct {
	StoragePath         string         `env:"STORAGE_PATH" envDefault:"datastore.json"`
	StorageSaveInterval time.Duration  `env:"STORAGE_SAVE_INTERVAL" envDefault:"1m"`
	Follow              FollowDefaults `envPrefix:"FOLLOW_"`
}

type Config struct {
	StorageConfig

	DiscordToken          string   `env:"DISCORD_TOKEN,required,notEmpty"`
	DeveloperID           string   `env:"DEVELOPER_ID"`
	DiscordGuildBlacklist []string `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
	InitSlashCommands     bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	CommandCacheDir       string   `env:"COMMAND_CACHE_DIR" envDefault:"data/commands"`

	VoiceSelfMute bool `env:"VOICE_SELF_MUTE" envDefault:"true"`
	VoiceSelfDeaf bool `env:"VOICE_SELF_DEAF" envDefault:"true"`

	NoticeTTL     time.Duration `env:"FOLLOW_NOTICE_TTL" envDefault:"15s"`
	ResumeOnStart bool          `env:"FOLLOW_RESUME_ON_START" envDefault:"true"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	loadDotEnv()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadStorage is Load without the bot settings, for offline tools.
func LoadStorage() (*StorageConfig, error) {
	loadDotEnv()

	var cfg StorageConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse storage config: %w", err)
	}
	return &cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
}

// New is Load for entrypoints: a broken config is fatal.
func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}
	return cfg
}

// IsDeveloper reports whether userID is the configured developer.
func IsDeveloper(cfg *Config, userID string) bool {
	return cfg != nil && cfg.DeveloperID != "" && cfg.DeveloperID == userID
}

// IsGuildBlacklisted reports whether the bot must not operate in guildID.
func (c *Config) IsGuildBlacklisted(guildID string) bool {
	return slices.Contains(c.DiscordGuildBlacklist, guildID)
}
