// Package main provides portalctl, a command line front door to the Raylene
// immigration portal API for staff and support engineers: log in, inspect
// the current session, and browse applications and bookings without the web
// UI.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/applications"
	"github.com/ludmilpaulo/rayleneimmigration.co.za/bookings"
	"github.com/ludmilpaulo/rayleneimmigration.co.za/internal/config"
	"github.com/ludmilpaulo/rayleneimmigration.co.za/session"
	"github.com/ludmilpaulo/rayleneimmigration.co.za/session/tokenstore"
	"github.com/ludmilpaulo/rayleneimmigration.co.za/users"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient(cfg config.Config) (*session.Client, error) {
	store, err := tokenstore.NewFileStore(cfg.GetDataFolder())
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if cfg.GetEnv() == "DEV" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	}

	return session.New(cfg, store,
		session.WithLogger(logger),
		session.WithRedirectFunc(func(string) {
			fmt.Fprintln(os.Stderr, "Session expired, run `portalctl login` again")
		}),
	)
}

func rootCmd() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Raylene immigration portal client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		loginCmd(cfg),
		logoutCmd(cfg),
		meCmd(cfg),
		applicationsCmd(cfg),
		bookingsCmd(cfg),
	)
	return cmd
}

func loginCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Authenticate and store the session locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			figure.NewFigure(cfg.GetAppName(), "cybermedium", true).Print()
			fmt.Println()

			fmt.Print("Password: ")
			password, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return err
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			sess, err := client.Login(cmd.Context(), args[0], strings.TrimRight(password, "\r\n"))
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", args[0])
			if expiry, ok := sess.ExpiresAt(); ok {
				fmt.Printf("Access token expires %s\n", expiry.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func logoutCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			if err := client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func meCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			user, err := resume(cmd.Context(), client)
			if err != nil {
				return err
			}

			fmt.Printf("%s <%s>\n", user.FullName(), user.Email)
			switch {
			case client.IsAdmin():
				fmt.Println("Access: staff")
			default:
				fmt.Println("Access: client")
			}
			for _, assignment := range user.UserRoles {
				fmt.Printf("Role: %s (%s)\n", assignment.Role.Name, assignment.Role.Code)
			}
			return nil
		},
	}
}

func applicationsCmd(cfg config.Config) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "List applications visible to the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			if _, err := resume(cmd.Context(), client); err != nil {
				return err
			}

			page, err := applications.New(client).List(cmd.Context(), applications.ListFilters{Status: status})
			if err != nil {
				return err
			}

			fmt.Printf("%d application(s)\n", page.Count)
			for _, app := range page.Results {
				fmt.Printf("%-36s  %-14s  %-8s  %s\n", app.ID, app.Status, app.Priority, app.ApplicationTypeName)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status (e.g. IN_REVIEW)")
	return cmd
}

func bookingsCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List the session's consultation bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			if _, err := resume(cmd.Context(), client); err != nil {
				return err
			}

			page, err := bookings.New(client).List(cmd.Context(), session.ListParams{})
			if err != nil {
				return err
			}

			fmt.Printf("%d booking(s)\n", page.Count)
			for _, booking := range page.Results {
				fmt.Printf("%-36s  %-10s  %s\n", booking.ID, booking.Status, booking.CreatedAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

func resume(ctx context.Context, client *session.Client) (*users.User, error) {
	u, err := client.Resume(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("not logged in, run `portalctl login` first")
	}
	return u, nil
}
