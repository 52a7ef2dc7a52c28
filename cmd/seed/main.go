package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"github.com/comp2537/web-portal/internal/users"
)

// Seeds the initial admin account and the members-page gallery. Safe to
// re-run: both writes are upserts.
var (
	dsn      = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	email    = flag.String("email", "", "Admin email (required)")
	name     = flag.String("name", "Admin", "Admin display name")
	password = flag.String("password", "", "Admin password (required)")
	images   = flag.String("images", "cat1.jpg,cat2.jpg,cat3.jpg", "Comma-separated members gallery images")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}
	if *email == "" || *password == "" {
		fatalf("--email and --password are required")
	}

	hashed, err := users.HashPassword(*password)
	if err != nil {
		fatalf("hash password: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO portal.users (user_id, name, email, hashed_password, role)
		VALUES ($1, $2, $3, $4, 'admin')
		ON CONFLICT (email) DO UPDATE SET role = 'admin'`,
		uuid.NewString(), *name, *email, hashed)
	if err != nil {
		fatalf("seed admin: %v", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		fmt.Printf("Admin %s ready\n", *email)
	}

	list := strings.Split(*images, ",")
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO portal.galleries (slug, images)
		VALUES ('members', $1)
		ON CONFLICT (slug) DO UPDATE SET images = EXCLUDED.images`,
		pq.Array(list))
	if err != nil {
		fatalf("seed gallery: %v", err)
	}
	fmt.Printf("Gallery seeded with %d images\n", len(list))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
