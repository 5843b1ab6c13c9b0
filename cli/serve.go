// ABOUTME: Serve command: boots the API server with structured logging
// ABOUTME: Rotating file logs when --log-file is set, console otherwise
package cli

import (
	"database/sql"
	"flag"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tablerohq/tablero/auth"
	"github.com/tablerohq/tablero/web"
)

// ServeCommand starts the HTTP API server.
func ServeCommand(database *sql.DB, sessionPath string, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "Listen address")
	logFile := fs.String("log-file", "", "Log to a rotating file instead of stderr")
	_ = fs.Parse(args)

	logger, err := buildLogger(*logFile)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	sessions, err := auth.OpenSessionStore(sessionPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sessions.Close()

	server := web.NewServer(database, sessions, logger)
	defer server.Shutdown()

	fmt.Printf("Serving dashboard API at http://localhost%s\n", *addr)
	return server.Start(*addr)
}

// buildLogger returns a console logger, or a JSON logger writing to a
// size-rotated file when path is set.
func buildLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewDevelopment()
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		writer,
		zap.InfoLevel,
	)
	return zap.New(core), nil
}
