// Package main implements liteadmin, a command-line companion to the
// litekeeper server for one-off database administration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/litekeeper/litekeeper/internal/auth"
	"github.com/litekeeper/litekeeper/internal/sqliteutil"
)

// opTimeout bounds each database operation.
const opTimeout = 30 * time.Second

const usageText = `Usage: liteadmin <command> [flags] [args]

Commands:
  create                     create a new empty database file
  count <table>              print the number of rows in a table
  max <table> <column>       print the largest integer value in a column
  clear <table>              delete all rows from a table
  exec <sql>                 execute a single SQL statement
  hash-token <token>         print the bcrypt hash of an admin token

Flags:
  -db <path>                 database file (default $DATABASE_PATH or /data/litekeeper.db)
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}
	cmd, rest := args[0], args[1:]

	// hash-token has no database to open.
	if cmd == "hash-token" {
		return runHashToken(rest)
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	dbPath := fs.String("db", defaultDBPath(), "database file path")
	if err := fs.Parse(rest); err != nil {
		return 2
	}
	rest = fs.Args()

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	switch cmd {
	case "create":
		return runCreate(*dbPath)
	case "count":
		return runCount(ctx, *dbPath, rest)
	case "max":
		return runMax(ctx, *dbPath, rest)
	case "clear":
		return runClear(ctx, *dbPath, rest)
	case "exec":
		return runExec(ctx, *dbPath, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}
}

func defaultDBPath() string {
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		return path
	}
	return "/data/litekeeper.db"
}

// cliLogger keeps the façade's structured logging out of normal CLI output
// while preserving warnings and errors on stderr.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

func runCreate(path string) int {
	db, err := sqliteutil.Create(path, cliLogger())
	if err != nil {
		if errors.Is(err, sqliteutil.ErrExists) {
			return fail("database already exists at %s", path)
		}
		return fail("create database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	fmt.Printf("created %s\n", path)
	return 0
}

func runCount(ctx context.Context, path string, args []string) int {
	if len(args) != 1 {
		return fail("usage: liteadmin count [-db path] <table>")
	}
	db, ok := openDB(path)
	if !ok {
		return 1
	}
	defer db.Close() //nolint:errcheck

	n, err := db.CountRows(ctx, args[0])
	if err != nil {
		return fail("count rows: %v", err)
	}
	fmt.Println(n)
	return 0
}

func runMax(ctx context.Context, path string, args []string) int {
	if len(args) != 2 {
		return fail("usage: liteadmin max [-db path] <table> <column>")
	}
	db, ok := openDB(path)
	if !ok {
		return 1
	}
	defer db.Close() //nolint:errcheck

	v, err := db.MaxIntValue(ctx, args[0], args[1])
	if err != nil {
		return fail("max value: %v", err)
	}
	fmt.Println(v)
	return 0
}

func runClear(ctx context.Context, path string, args []string) int {
	if len(args) != 1 {
		return fail("usage: liteadmin clear [-db path] <table>")
	}
	db, ok := openDB(path)
	if !ok {
		return 1
	}
	defer db.Close() //nolint:errcheck

	if err := db.ClearTable(ctx, args[0]); err != nil {
		return fail("clear table: %v", err)
	}
	fmt.Printf("cleared %s\n", args[0])
	return 0
}

func runExec(ctx context.Context, path string, args []string) int {
	if len(args) != 1 {
		return fail("usage: liteadmin exec [-db path] <sql>")
	}
	db, ok := openDB(path)
	if !ok {
		return 1
	}
	defer db.Close() //nolint:errcheck

	if err := db.Exec(ctx, args[0]); err != nil {
		return fail("exec: %v", err)
	}
	fmt.Println("ok")
	return 0
}

func runHashToken(args []string) int {
	if len(args) != 1 {
		return fail("usage: liteadmin hash-token <token>")
	}
	hash, err := auth.HashToken(args[0])
	if err != nil {
		return fail("hash token: %v", err)
	}
	fmt.Println(hash)
	return 0
}

func openDB(path string) (*sqliteutil.DB, bool) {
	db, err := sqliteutil.Open(path, cliLogger())
	if err != nil {
		if errors.Is(err, sqliteutil.ErrNotFound) {
			fail("no database at %s (run 'liteadmin create' first)", path)
		} else {
			fail("open database: %v", err)
		}
		return nil, false
	}
	return db, true
}

func fail(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return 1
}
