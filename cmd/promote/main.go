// Command promote changes a user's role by email address.
// It is used to grant or revoke administrative access outside the API.
//
// Usage:
//
//	promote --email=user@example.com [--role=super-admin]
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	userrepo "github.com/leadflow/leadflow-backend/internal/adapter/postgres/user"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the user to change")
	role := flag.String("role", string(domain.RoleSuperAdmin), "new role: super-admin, sub-admin or support-agent")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com [--role=super-admin]")
		os.Exit(1)
	}

	newRole := domain.Role(*role)
	if !newRole.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	u, err := userrepo.New(pool).UpdateRole(ctx, *email, newRole)
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Printf("No user found with email %q.\n", *email)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("update role: %v", err)
	}

	fmt.Printf("User %q is now %s.\n", u.Email, u.Role)
}
