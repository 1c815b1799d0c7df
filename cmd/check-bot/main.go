package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Caelestis94/telehook/config"
	"github.com/Caelestis94/telehook/telegram"
)

/* check-bot - Standalone CLI tool to verify a bot token against the Bot
 * API (getMe).
 * Usage: go run cmd/check-bot/main.go <bot-token>
 * Exit codes: 0 = token valid, 1 = invalid or unreachable
 */

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: check-bot <bot-token>\n")
		os.Exit(1)
	}
	token := os.Args[1]

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration: %v\n", err)
		os.Exit(1)
	}

	client := telegram.NewClient(cfg.TelegramBaseURL, cfg.TelegramTimeout())

	outcome := client.TestConnection(context.Background(), token)
	switch outcome.Kind {
	case telegram.Sent:
		fmt.Printf("Bot token is valid.\n%s\n", outcome.Body)
	case telegram.Rejected:
		fmt.Fprintf(os.Stderr, "Bot token rejected (%d): %s\n", outcome.StatusCode, outcome.Body)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Bot API unreachable (%s): %v\n", outcome.Transport, outcome.Err)
		os.Exit(1)
	}
}
