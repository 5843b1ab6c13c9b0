// ABOUTME: Entry point for the dashboard backend and CLI
// ABOUTME: Routes to serve, user, and sheets commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/tablerohq/tablero/cli"
	"github.com/tablerohq/tablero/db"
)

const version = "0.1.0"

func main() {
	// .env is optional; absence is not an error
	_ = godotenv.Load()

	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/tablero/tablero.db)")
	sessionPath := flag.String("session-path", "", "Session store path (default: ~/.local/share/tablero/sessions)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("tablero version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	finalDBPath := getDatabasePath(*dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Printf("Database initialized at %s", finalDBPath)
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "serve":
		if err := cli.ServeCommand(database, getSessionPath(*sessionPath), commandArgs); err != nil {
			log.Fatalf("Server failed: %v", err)
		}

	case "user":
		if len(commandArgs) == 0 {
			fmt.Println("Error: user requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		switch commandArgs[0] {
		case "add":
			if err := cli.UserAddCommand(database, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown user subcommand: %s\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}

	case "sheets":
		if len(commandArgs) == 0 {
			fmt.Println("Error: sheets requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		switch commandArgs[0] {
		case "sync":
			if err := cli.SheetsSyncCommand(database, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown sheets subcommand: %s\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "tablero", "tablero.db")
}

func getSessionPath(sessionPath string) string {
	if sessionPath != "" {
		return sessionPath
	}
	return filepath.Join(xdg.DataHome, "tablero", "sessions")
}

func printUsage() {
	fmt.Printf(`tablero v%s - Personal dashboard backend

USAGE:
  tablero [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version                 Show version and exit
  --db-path <path>          Database path (default: ~/.local/share/tablero/tablero.db)
  --session-path <path>     Session store path (default: ~/.local/share/tablero/sessions)
  --init                    Initialize database and exit

COMMANDS:
  tablero serve             Start the HTTP API server
    --addr <addr>             Listen address (default: :8080)
    --log-file <path>         Log to a rotating file instead of stderr

  tablero user add          Create an account (prompts for password)
    --email <email>           Account email (required)
    --name <name>             Display name

  tablero sheets sync       Re-sync all connected Google Sheets once

EXAMPLES:
  # Create an account
  tablero user add --email "ana@example.com" --name "Ana"

  # Start the API server on another port
  tablero serve --addr :9090

  # Refresh all connected sheets from cron
  tablero sheets sync

`, version)
}
