// Package main starts the chat bot process and handles termination.
//
// The process is a transport adapter around the message router: it
// connects to the chat gateway and dispatches events to the feature
// handlers.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	botcmd "github.com/louisbranch/questline/internal/cmd/bot"
	"github.com/louisbranch/questline/internal/platform/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.SetPrefix("[BOT] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := botcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("bot failed: %v", err)
	}
}
