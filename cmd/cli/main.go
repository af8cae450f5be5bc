// Command cli performs operator tasks against the payments portal store:
// provisioning staff, toggling customer accounts and purging the login
// audit trail.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/amirasaad/payportal/infra/initializer"
	"github.com/amirasaad/payportal/pkg/app"
	"github.com/amirasaad/payportal/pkg/config"
	"github.com/fatih/color"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]

Commands:
  create-staff <username> <full name>   provision a staff member (password is prompted)
  activate <accountNumber>              re-enable a customer account
  deactivate <accountNumber>            disable a customer account
  purge-login-attempts                  delete audit records older than the retention period`

var (
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		failure.Fprintln(os.Stderr, "error:", err) //nolint:errcheck
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	// Operator commands never need the broker or a background migration.
	cfg.EventBus.Driver = "memory"

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close() //nolint:errcheck
	portal := app.New(deps, cfg)
	defer portal.AuditRecorder.Wait()

	switch cmd {
	case "create-staff":
		if len(args) < 2 {
			return errors.New("usage: create-staff <username> <full name>")
		}
		password, err := readPassword(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}
		id, err := portal.AuthService.CreateStaff(ctx, args[0], strings.Join(args[1:], " "), password)
		if err != nil {
			return err
		}
		success.Printf("staff %s created (id %s)\n", args[0], id) //nolint:errcheck
	case "activate", "deactivate":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <accountNumber>", cmd)
		}
		if err := portal.DirectoryService.SetActive(ctx, args[0], cmd == "activate"); err != nil {
			return err
		}
		success.Printf("account %s %sd\n", args[0], cmd) //nolint:errcheck
	case "purge-login-attempts":
		removed, err := portal.AuditRecorder.Purge(ctx, time.Now())
		if err != nil {
			return err
		}
		success.Printf("removed %d login attempt(s)\n", removed) //nolint:errcheck
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
	return nil
}

// readPassword prompts twice without echo when stdin is a terminal and
// reads a single line otherwise.
func readPassword(in *os.File, prompt io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprint(prompt, "Password: ") //nolint:errcheck
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt) //nolint:errcheck
	if err != nil {
		return "", err
	}
	fmt.Fprint(prompt, "Confirm password: ") //nolint:errcheck
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt) //nolint:errcheck
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
