// Command forno serves the ordering API: Firebase-authenticated profile,
// menu and order endpoints over Firestore.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/forno-app/forno/internal/api"
	"github.com/forno-app/forno/internal/auth"
	"github.com/forno-app/forno/internal/config"
	"github.com/forno-app/forno/internal/menu"
	"github.com/forno-app/forno/internal/metrics"
	"github.com/forno-app/forno/internal/notify"
	"github.com/forno-app/forno/internal/order"
	"github.com/forno-app/forno/internal/store"
	"github.com/forno-app/forno/internal/user"
	"github.com/forno-app/forno/internal/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Local development convenience; ignored when the file is absent.
	if err := godotenv.Load(".env.localdev"); err == nil {
		log.Print("loaded .env.localdev")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log.Printf("starting forno (commit %s)", version.CommitHash)

	ctx := context.Background()

	client, err := store.NewClient(ctx, store.Config{
		ProjectID:   cfg.Store.ProjectID,
		Database:    cfg.Store.Database,
		Credentials: cfg.Store.Credentials,
		Access:      store.AccessPrivileged,
	})
	if err != nil {
		log.Fatalf("failed to create store client: %v", err)
	}
	defer client.Close()

	verifier, err := auth.NewFirebaseTokenVerifier(ctx, auth.FirebaseConfig{
		ProjectID:   cfg.Auth.ProjectID,
		Credentials: cfg.Auth.Credentials,
	})
	if err != nil {
		log.Fatalf("failed to create token verifier: %v", err)
	}

	users := user.NewFirestoreRepository(client)
	items := menu.NewItemFirestoreRepository(client)
	categories := menu.NewCategoryFirestoreRepository(client)
	orders := order.NewFirestoreRepository(client)

	guard := auth.NewGuard(verifier, users)

	retryConfig := notify.DefaultRetryConfig()
	retryConfig.MaxRetries = cfg.Notify.MaxRetries
	sender := notify.NewRetryingSender(notify.NewSender(), retryConfig)
	notifier := notify.NewNotifier(sender, cfg.Notify.Targets,
		time.Duration(cfg.Notify.TimeoutSeconds)*time.Second)

	hub := api.NewHub()
	collector := metrics.NewCollector()

	router := api.NewRouter(api.RouterConfig{
		Guard:      guard,
		Users:      users,
		Items:      items,
		Categories: categories,
		Orders:     orders,
		Notifier:   notifier,
		Hub:        hub,
		Metrics:    collector,
		Security:   &cfg.Security,
	})
	defer router.Stop()

	server := api.NewServer(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server failed: %v", err)
		}
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
