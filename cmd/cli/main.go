package main

import (
	"log"
	"os"

	"github.com/keshon/voice-follow/internal/cli"
	"github.com/keshon/voice-follow/internal/config"
	"github.com/keshon/voice-follow/internal/storage"
	"github.com/keshon/voice-follow/pkg/cmd"
)

func main() {
	cfg, err := config.LoadStorage()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	cli.Register(cmd.DefaultRegistry)
	root := cli.NewRootCommand(cmd.DefaultRegistry, func() (*storage.Storage, error) {
		return storage.New(cfg.StoragePath, cfg.Follow.Settings())
	})

	if err := root.Execute(); err != nil {
		log.Println("[ERR]", err)
		os.Exit(1)
	}
}
