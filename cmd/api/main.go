package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/vibecheck-labs/vibecheck/internal/adapters/recs"
	"github.com/vibecheck-labs/vibecheck/internal/adapters/rest"
	"github.com/vibecheck-labs/vibecheck/internal/adapters/spotify"
	"github.com/vibecheck-labs/vibecheck/internal/adapters/sqlite"
	"github.com/vibecheck-labs/vibecheck/internal/core/services"
	"github.com/vibecheck-labs/vibecheck/internal/worker"
)

const spotifyTokenURL = "https://accounts.spotify.com/api/token"

func main() {
	// 1. Configuration (Environment Variables)
	// Crash early if required config is missing.
	tokenSource := spotifyTokenSource()

	recsBaseURL := os.Getenv("RECS_BASE_URL")
	if recsBaseURL == "" {
		log.Fatal("FATAL: RECS_BASE_URL environment variable is required")
	}

	storagePath := os.Getenv("SQLITE_PATH")
	if storagePath == "" {
		storagePath = "vibecheck.db"
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	// 2. Initialize "Driven" Adapters (The Tools)
	dbAdapter, err := sqlite.NewAdapter(storagePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer dbAdapter.Close()

	spotifyClient := spotify.NewClient(tokenSource, "")
	recsClient := recs.NewClient(recsBaseURL)

	// 3. Initialize Core Logic (The Driver)
	pool := worker.NewPool(spotifyClient, dbAdapter.Catalog, 100)
	pool.Start(2)
	defer pool.Stop()

	sessions := services.NewSessionManager(dbAdapter.Sessions, dbAdapter.Profiles, recsClient, spotifyClient)
	materializer := services.NewMaterializer(dbAdapter.Sessions, dbAdapter.Playlists, dbAdapter.Profiles, spotifyClient, recsClient, pool)

	// 4. Initialize "Driving" Adapter (The Interface)
	handler := rest.NewHandler(sessions, materializer, spotifyClient)

	// 5. Start the Server
	log.Println("------------------------------------------------")
	log.Printf("🎧 Vibecheck API is running on %s", listenAddr)
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}

// spotifyTokenSource builds the bearer source for the platform client.
// SPOTIFY_ACCESS_TOKEN short-circuits to a static token for local runs;
// otherwise the client-credentials flow refreshes tokens as needed.
func spotifyTokenSource() oauth2.TokenSource {
	if token := os.Getenv("SPOTIFY_ACCESS_TOKEN"); token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	}

	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("FATAL: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables are required")
	}

	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}
	return cfg.TokenSource(context.Background())
}
