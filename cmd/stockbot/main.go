package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/susu3304/stockbot/internal/api"
	"github.com/susu3304/stockbot/internal/bot"
	"github.com/susu3304/stockbot/internal/config"
	"github.com/susu3304/stockbot/internal/publisher"
	"github.com/susu3304/stockbot/internal/stock"
	"github.com/susu3304/stockbot/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open ledger store
	ledgerStore, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open ledger store: %v", err)
	}

	svc := stock.NewService(ledgerStore)

	channels := publisher.Channels{
		ByCategory: map[stock.Category]string{
			stock.Weapons: cfg.WeaponsChannelID,
			stock.Drugs:   cfg.DrugsChannelID,
			stock.Funds:   cfg.FundsChannelID,
		},
		Global: cfg.SummaryChannelID,
	}

	// Initialize Discord bot
	discordBot, err := bot.New(cfg.DiscordToken, svc, ledgerStore, channels)
	if err != nil {
		log.Fatalf("Failed to create discord bot: %v", err)
	}

	// Initialize API server
	apiServer := api.New(cfg, ledgerStore)

	// Start Discord bot
	if err := discordBot.Start(); err != nil {
		log.Fatalf("Failed to start discord bot: %v", err)
	}
	defer discordBot.Stop()

	// Start API server
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Printf("API server error: %v", err)
		}
	}()

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
}
