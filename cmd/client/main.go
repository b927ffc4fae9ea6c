package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/iamasit07/connect4-arena/internal/client"
	"github.com/iamasit07/connect4-arena/internal/config"
	"github.com/iamasit07/connect4-arena/internal/protocol"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

var version = "dev"

func main() {
	godotenv.Load()

	fs := flag.NewFlagSet("connect4-client", flag.ExitOnError)
	addr := fs.StringP("addr", "a", config.GetEnv("CONNECT4_ADDR", "localhost:8000"), "Server host:port or ws:// URL")
	modeName := fs.StringP("mode", "m", "player", "Opponent: computer (C) or player (P)")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("connect4-client %s\n", version)
		return
	}

	mode, ok := protocol.ParseMode(*modeName)
	if !ok {
		log.Fatalf("Unknown mode %q: use computer or player", *modeName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	ws, err := client.Dial(ctx, *addr)
	cancel()
	if err != nil {
		log.Fatalf("Could not reach server: %v", err)
	}
	defer ws.Close()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if _, err := client.New(ws, os.Stdin, os.Stdout, interactive).Play(mode); err != nil {
		log.Fatalf("Game ended with error: %v", err)
	}
}
