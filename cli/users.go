// ABOUTME: User management CLI commands
// ABOUTME: Account creation with an interactive password prompt
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/tablerohq/tablero/auth"
	"github.com/tablerohq/tablero/db"
	"github.com/tablerohq/tablero/models"
)

// UserAddCommand creates an account, prompting for the password so it never
// lands in shell history.
func UserAddCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("user add", flag.ExitOnError)
	email := fs.String("email", "", "Account email (required)")
	name := fs.String("name", "", "Display name")
	_ = fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	existing, err := db.GetUserByEmail(database, *email)
	if err != nil {
		return fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("an account with email %s already exists", *email)
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: *email, Name: *name, PasswordHash: hash}
	if err := db.CreateUser(database, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("✓ Created account %s (%s)\n", user.Email, user.ID)
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimSpace(string(first))
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	if password != strings.TrimSpace(string(second)) {
		return "", fmt.Errorf("passwords do not match")
	}
	return password, nil
}
