package discord

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCommandCacheRoundTrip(t *testing.T) {
	c := commandCache{dir: filepath.Join(t.TempDir(), "commands")}

	if got := c.load("g1"); len(got) != 0 {
		t.Fatalf("load() on empty cache = %v", got)
	}

	c.save("g1", map[string]string{"follow": "abc"})
	if got := c.load("g1"); got["follow"] != "abc" || len(got) != 1 {
		t.Errorf("load() = %v", got)
	}
	if got := c.load("g2"); len(got) != 0 {
		t.Errorf("guilds share a cache: %v", got)
	}
}

func TestCommandCacheCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "g1.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	c := commandCache{dir: dir}
	if got := c.load("g1"); got == nil || len(got) != 0 {
		t.Errorf("load() = %v, want empty map", got)
	}
}
