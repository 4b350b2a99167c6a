package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"expensemanager/internal/domain/user"
	"expensemanager/internal/infrastructure/postgres"
	"expensemanager/internal/shared/config"
	"expensemanager/internal/shared/logger"
)

const usage = `Expense Manager Admin CLI - Management commands for the Expense Manager API

Usage:
  admin <command> [options]

Commands:
  migrate up              Apply all pending schema migrations
  migrate down [steps]    Roll back migrations (default 1 step)
  migrate version         Print the current schema version
  create-user             Register a user account
  list-users              List registered users

Examples:
  admin migrate up
  admin migrate down 2
  admin create-user --name="Ada Lovelace" --username=ada
  echo "s3cret!" | admin create-user --name=Ada --username=ada
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Print(usage + "\n")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	log := logger.New(cfg.Env, cfg.LogLevel)

	command := os.Args[1]

	switch command {
	case "migrate":
		err = runMigrate(cfg, os.Args[2:], os.Stdout)
	case "create-user":
		err = runCreateUser(cfg, os.Args[2:], os.Stdin, os.Stdout)
	case "list-users":
		err = runListUsers(cfg, os.Stdout)
	case "help", "-h", "--help":
		fmt.Print(usage + "\n")
		return
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage + "\n")
		os.Exit(1)
	}

	if err != nil {
		log.WithError(err).WithField("command", command).Fatal("Command failed")
	}
}

func runMigrate(cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New("migrate requires a subcommand: up, down or version")
	}

	mg, err := postgres.NewMigrator(cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer mg.Close()

	switch args[0] {
	case "up":
		if err := mg.Up(); err != nil {
			return err
		}
	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			return err
		}
		if err := mg.Down(steps); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown migrate subcommand %q", args[0])
	}

	version, dirty, ok, err := mg.Version()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(stdout, "Schema version: none")
		return nil
	}
	fmt.Fprintf(stdout, "Schema version: %d (dirty: %t)\n", version, dirty)
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps <= 0 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

func runCreateUser(cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	name := fs.String("name", "", "Display name")
	username := fs.String("username", "", "Login name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		fs.Usage()
		return errors.New("--username is required")
	}
	if *name == "" {
		*name = *username
	}

	fmt.Fprint(stdout, "Password: ")
	password, err := readPassword(stdin)
	fmt.Fprintln(stdout)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := user.NewService(postgres.NewUserRepository(db)).Register(ctx, user.RegisterParams{
		Name:     *name,
		Username: *username,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", u.Username, u.ID)
	return nil
}

func runListUsers(cfg *config.Config, stdout io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := postgres.NewUserRepository(db).List(ctx)
	if err != nil {
		return err
	}
	return printUsers(stdout, users)
}

func printUsers(w io.Writer, users []*user.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Name, u.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

// readPassword reads without echo from a terminal, or the first line of any
// other reader (pipes, tests).
func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
