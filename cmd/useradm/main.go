// Command useradm creates user accounts from the terminal, bypassing the
// network API. Intended for bootstrapping the first account of a fresh
// deployment.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/andrejsk/placemark/internal/common"
	"github.com/andrejsk/placemark/internal/server/auth"
	"github.com/andrejsk/placemark/internal/server/config"
	"github.com/andrejsk/placemark/internal/server/repositories/repomanager"
	"github.com/andrejsk/placemark/internal/server/services"
)

func main() {

	cfg := &config.Config{}
	cfg.LoadDefaults()

	dsn := flag.String("d", cfg.DatabaseDSN, "database dsn")
	username := flag.String("u", "", "username")
	email := flag.String("e", "", "email address")
	flag.Parse()

	if *username == "" || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}
	defer common.WipeByteArray(password)

	// The codec is unused here but NewUserService wants the full wiring.
	codec, err := auth.NewCodec("useradm", "HS256", auth.DefaultAudience, cfg.AccessTokenValidityDuration)
	if err != nil {
		log.Fatalf("%v", err)
	}

	svc := services.NewUserService(db, m, codec, auth.NewPasswordHasher(cfg.BCryptCost), cfg)

	user, err := svc.Register(ctx, *username, *email, string(password))
	if err != nil {
		log.Fatalf("creating user: %v", err)
	}

	fmt.Printf("Created user %s (%s)\n", user.Username, user.ID)
}
