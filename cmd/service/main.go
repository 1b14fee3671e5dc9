package main

import (
	"flag"

	"gitlab.com/epixlabs/contact-relay/internal/config"
	"gitlab.com/epixlabs/contact-relay/internal/logging"
	"gitlab.com/epixlabs/contact-relay/internal/service"
	"gitlab.com/epixlabs/contact-relay/internal/telegram"
)

// Usage example on the command line:
// > PORT=8080 TELEGRAM_BOT_TOKEN=123:abc TELEGRAM_CHAT_ID=-100200300 GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	configPath := flag.String("config", "", "optional YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Log.WithError(err).Fatal("could not load configuration")
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.Log.WithError(err).Fatal("could not parse log level")
	}

	client := telegram.NewClient(cfg.Telegram.APIURL, cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	service.Setup(cfg, client)
	router := service.SetupHttpRouter()

	logging.Log.WithField("addr", cfg.Addr()).Info("starting contact relay")
	if err := router.Run(cfg.Addr()); err != nil {
		logging.Log.WithError(err).Fatal("relay stopped")
	}
}
