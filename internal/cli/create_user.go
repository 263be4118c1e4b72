package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mrlokans/wordbook/internal/auth"
	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/database"
)

// CreateUserCommand registers a user from the terminal.
type CreateUserCommand struct {
	Username     string
	DatabasePath string

	// PasswordStdin reads the password from the first line of stdin instead
	// of prompting.
	PasswordStdin bool

	stdin  io.Reader
	stdout io.Writer
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{stdin: os.Stdin, stdout: os.Stdout}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username for the new account (required)")
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the SQLite database (default: DATABASE_PATH)")
	fs.BoolVar(&cmd.PasswordStdin, "password-stdin", false, "Read the password from stdin instead of prompting")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -username <name> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account. The password is prompted for without echo.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username hanako\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  echo \"$PASSWORD\" | %s create-user -username hanako -password-stdin\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	cfg := config.NewConfig()
	if cmd.DatabasePath != "" {
		cfg.Database.Path = cmd.DatabasePath
	}

	db, err := database.Open(cfg.Storage.Backend, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	password, err := cmd.readPassword()
	if err != nil {
		return err
	}

	return cmd.create(context.Background(), auth.NewService(db, cfg.Auth), password)
}

func (cmd *CreateUserCommand) create(ctx context.Context, service *auth.Service, password string) error {
	user, err := service.Register(ctx, cmd.Username, password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return fmt.Errorf("user %q already exists", cmd.Username)
		}
		return err
	}

	fmt.Fprintf(cmd.stdout, "Created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

func (cmd *CreateUserCommand) readPassword() (string, error) {
	if cmd.PasswordStdin {
		line, err := bufio.NewReader(cmd.stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal, use -password-stdin")
	}

	fmt.Fprint(cmd.stdout, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(cmd.stdout, "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}
