package discord

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// commandCache remembers, per guild, the hash of every registered command.
type commandCache struct {
	dir string
}

func (c commandCache) path(guildID string) string {
	return filepath.Join(c.dir, guildID+".json")
}

func (c commandCache) load(guildID string) map[string]string {
	out := make(map[string]string)
	if data, err := os.ReadFile(c.path(guildID)); err == nil {
		if err := json.Unmarshal(data, &out); err != nil {
			log.Printf("[WARN] [%s] Ignoring corrupt command cache: %v", guildID, err)
			return make(map[string]string)
		}
	}
	return out
}

func (c commandCache) save(guildID string, hashes map[string]string) {
	path := c.path(guildID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("[WARN] [%s] Failed to create command cache dir: %v", guildID, err)
		return
	}
	data, err := json.MarshalIndent(hashes, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("[WARN] [%s] Failed to write command cache: %v", guildID, err)
	}
}
