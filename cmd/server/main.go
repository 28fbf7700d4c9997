package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"ageproof/internal/api"
	"ageproof/internal/auth"
	"ageproof/internal/certs"
	"ageproof/internal/commit"
	"ageproof/internal/config"
	"ageproof/internal/proof"
	"ageproof/internal/utils"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger, err := utils.NewLogger(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	verifier := &proof.Verifier{Window: cfg.ReplayWindow, Skew: cfg.ClockSkew}

	var adminAuth *auth.Auth
	if cfg.AdminPasswordHash != "" {
		secret, err := readMasterSecret(cfg.MasterSecretFile)
		if err != nil {
			log.Fatal(err)
		}
		signingKey, err := commit.DeriveSigningKey(secret)
		if err != nil {
			log.Fatal(err)
		}
		adminAuth = auth.New(cfg.AdminPasswordHash, signingKey, cfg.AdminTokenTTL)
	} else {
		logger.Warn("admin endpoints disabled: no admin password hash configured")
	}

	h := api.NewHandler(verifier, adminAuth, logger)
	srv := &http.Server{Addr: cfg.Addr, Handler: api.NewRouter(h)}

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		_, leaf, err := certs.NewManager(cfg.TLSCertFile, cfg.TLSKeyFile).Load()
		if err != nil {
			log.Fatal(err)
		}
		now := time.Now()
		if certs.IsExpired(leaf, now) {
			log.Fatalf("TLS certificate expired %s", leaf.NotAfter)
		}
		if certs.ExpiresWithin(leaf, now, 30*24*time.Hour) {
			logger.Warn(fmt.Sprintf("TLS certificate expires %s", leaf.NotAfter))
		}
		logger.Info("Server running with TLS on " + cfg.Addr)
		log.Fatal(srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile))
	}

	logger.Info("Server running on " + cfg.Addr)
	log.Fatal(srv.ListenAndServe())
}

// readMasterSecret reads and decodes the hex master secret file.
func readMasterSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read master secret: %w", err)
	}
	secret, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("decode master secret: %w", err)
	}
	return secret, nil
}
