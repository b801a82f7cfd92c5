// Command seed creates (or refreshes) the demo accounts: one Admin, one
// Manager and one plain User, all pre-confirmed so they can log in right
// away. Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/freshmarket/market-api/internal/domain/entity"
	"github.com/freshmarket/market-api/internal/infrastructure/postgres"
	"github.com/freshmarket/market-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer pool.Close()

	seed := []struct {
		username, email, password, role string
	}{
		{"admin", "admin@freshmarket.local", "Adm1n!pass", entity.RoleAdmin},
		{"manager", "manager@freshmarket.local", "Manag3r!pass", entity.RoleManager},
		{"shopper", "shopper@freshmarket.local", "Sh0pper!pass", entity.RoleUser},
	}

	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("bcrypt error: %v", err)
		}
		now := time.Now()
		_, err = pool.Exec(ctx, `
			INSERT INTO users (id, username, email, password_hash, email_confirmed, role,
				two_factor_enabled, access_failed_count, lockout_end, created_at, updated_at)
			VALUES ($1, $2, $3, $4, true, $5, false, 0, NULL, $6, $6)
			ON CONFLICT (email) DO UPDATE
			SET password_hash = EXCLUDED.password_hash,
			    role = EXCLUDED.role,
			    email_confirmed = true,
			    access_failed_count = 0,
			    lockout_end = NULL,
			    updated_at = EXCLUDED.updated_at`,
			uuid.New().String(), s.username, s.email, string(hash), s.role, now,
		)
		if err != nil {
			log.Fatalf("seed %s: %v", s.email, err)
		}
		log.Printf("seeded %s (%s)", s.email, s.role)
	}
}
