package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-arena/internal/config"
	"github.com/iamasit07/connect4-arena/internal/metrics"
	"github.com/iamasit07/connect4-arena/internal/repository/redis"
	"github.com/iamasit07/connect4-arena/internal/service/bot"
	"github.com/iamasit07/connect4-arena/internal/service/cleanup"
	"github.com/iamasit07/connect4-arena/internal/service/game"
	"github.com/iamasit07/connect4-arena/internal/service/matchmaking"
	transportHttp "github.com/iamasit07/connect4-arena/internal/transport/http"
	"github.com/iamasit07/connect4-arena/internal/transport/websocket"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

// version is overridable at link time:
//
//	go build -ldflags "-X main.version=1.1.0" ./cmd/server
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()
	fs := flag.NewFlagSet("connect4-server", flag.ExitOnError)
	cfg.BindFlags(fs)
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("connect4-server %s\n", version)
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	strategy, err := bot.New(cfg.BotStrategy)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	collector := metrics.New()

	// Redis presence is optional; the server runs the same without it.
	var tracker game.PresenceStore
	var refresher cleanup.PresenceRefresher
	if cfg.RedisURL != "" {
		client, err := redis.Connect(context.Background(), cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Printf("[REDIS] Warning: %v. Live-session presence disabled.", err)
		} else {
			defer client.Close()
			ttl := redis.DefaultPresenceTTL
			if 3*cfg.StatsInterval > ttl {
				ttl = 3 * cfg.StatsInterval
			}
			store := redis.NewPresenceStore(redis.NewRedisCache(client), ttl)
			tracker, refresher = store, store
		}
	}

	sessionManager := game.NewSessionManager(strategy, tracker, collector)
	matchmakingQueue := matchmaking.NewMatchmakingQueue(cfg.MatchmakingTimeout)

	listenerDone := make(chan struct{})
	go func() {
		defer close(listenerDone)
		matchmaking.MatchMakingListener(matchmakingQueue, sessionManager)
	}()

	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := cleanup.NewWorker(sessionManager, refresher, collector, cfg.StatsInterval).Start(workerCtx)

	wsHandler := websocket.NewHandler(matchmakingQueue, cfg.FirstAuxPort(), cfg.AllowedOrigins, collector)
	statusHandler := transportHttp.NewStatusHandler(sessionManager, collector, version)
	router := transportHttp.NewRouter(wsHandler.HandleWebSocket, statusHandler, cfg.AllowedOrigins)

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		log.Fatalf("Failed to bind %s: %v", cfg.Addr(), err)
	}

	srv := &http.Server{Handler: router}
	go func() {
		log.Printf("Server starting on %s (bot=%s, aux ports from %d)", ln.Addr(), cfg.BotStrategy, cfg.FirstAuxPort())
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	stop := make(chan struct{})
	if cfg.ConsoleShutdown {
		go watchConsole(stop)
	}

	select {
	case <-quit:
	case <-stop:
	}
	log.Println("Server is shutting down...")

	// Stop accepting first. Upgraded connections are not tracked by the
	// http server, so running sessions carry on after this returns.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	wsHandler.Wait()
	matchmakingQueue.Close()
	<-listenerDone

	if n := sessionManager.Count(); n > 0 {
		log.Printf("Waiting for %d running session(s) to finish", n)
	}
	sessionManager.Wait()

	stopWorker()
	<-workerDone

	log.Println("Server exited gracefully")
}

// watchConsole closes stop when the operator types q.
func watchConsole(stop chan<- struct{}) {
	log.Println("Type 'q' and press enter to shut down")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if strings.EqualFold(strings.TrimSpace(scanner.Text()), "q") {
			close(stop)
			return
		}
	}
}
