package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/summitmls/reso-odata-gateway/internal/auditbus"
	"github.com/summitmls/reso-odata-gateway/internal/authsvc"
	"github.com/summitmls/reso-odata-gateway/internal/config"
	"github.com/summitmls/reso-odata-gateway/internal/dbgateway"
	"github.com/summitmls/reso-odata-gateway/internal/httpapi"
	"github.com/summitmls/reso-odata-gateway/internal/resource"
	"github.com/summitmls/reso-odata-gateway/internal/tokenstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var tunnel *dbgateway.Tunnel
	if cfg.SSHTunnelEnabled {
		log.Println("Starting SSH tunnel to backend database...")
		tunnel, err = dbgateway.Start(dbgateway.TunnelConfig{
			SSHHost:        cfg.SSHTunnelHost,
			SSHPort:        cfg.SSHTunnelPort,
			SSHUser:        cfg.SSHTunnelUser,
			PrivateKeyPath: cfg.SSHTunnelPrivateKey,
			RemoteHost:     cfg.DBHost,
			RemotePort:     cfg.DBPort,
		})
		if err != nil {
			log.Fatalf("Failed to start SSH tunnel: %v", err)
		}
	}

	gwConfig := dbgateway.Config{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		Database:     cfg.DBName,
		MaxOpenConns: cfg.DBMaxConns,
	}

	var gateway *dbgateway.SQLGateway
	if tunnel != nil {
		gateway, err = dbgateway.NewTunneledGateway(gwConfig, tunnel)
	} else {
		gateway, err = dbgateway.Open(gwConfig)
	}
	if err != nil {
		log.Fatalf("Failed to connect to backend database: %v", err)
	}
	defer gateway.Close()

	log.Println("Connecting to token store...")
	store, err := tokenstore.Open(tokenstore.Config{
		ConnectionString: cfg.PGConnectionString,
		MaxOpenConns:     cfg.TokenPoolMaxConns,
		MaxIdleConns:     cfg.TokenPoolMaxConns,
	})
	if err != nil {
		log.Fatalf("Failed to connect to token store: %v", err)
	}
	defer store.Close()

	auth := authsvc.NewService(&authsvc.StoreAdapter{Store: store}, cfg.OAuthClientID, cfg.OAuthClientSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	auth.StartSweeper(sweeperCtx, cfg.TokenCleanupPeriod)

	log.Println("Connecting to audit bus...")
	audit, err := auditbus.Connect(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to audit bus: %v", err)
	}
	defer audit.Close()

	driver := resource.NewDriver(gateway, store)

	server := httpapi.NewServer(cfg, gateway, auth, audit, driver)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %d (environment: %s)", cfg.Port, cfg.AppEnv)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
