package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amaumene/cinescout/internal/render"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newWhoamiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		if err := rt.app.RefreshSession(ctx); err != nil {
			return err
		}
		printSession(cmd.OutOrStdout(), rt.store.Snapshot())
		return nil
	})
	return cmd
}

func newLoginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (read from stdin when empty)")
	cmd.MarkFlagRequired("email")

	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		if password == "" {
			var err error
			if password, err = readPassword(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
				return err
			}
		}

		if err := rt.app.Login(ctx, email, password); err != nil {
			return authError(rt.store.Snapshot().Auth.LoginError, err)
		}
		printSession(cmd.OutOrStdout(), rt.store.Snapshot())
		return nil
	})
	return cmd
}

func newSignupCommand() *cobra.Command {
	var email, password, confirmation string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log into it",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&confirmation, "confirm", "", "password confirmation")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("confirm")

	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		if err := rt.app.Signup(ctx, email, password, confirmation); err != nil {
			return authError(rt.store.Snapshot().Auth.SignupError, err)
		}
		printSession(cmd.OutOrStdout(), rt.store.Snapshot())
		return nil
	})
	return cmd
}

func newLogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		if err := rt.app.Logout(ctx); err != nil {
			rt.logger.WithError(err).Warn("Logout did not complete cleanly")
		}
		printSession(cmd.OutOrStdout(), rt.store.Snapshot())
		return nil
	})
	return cmd
}

func newLoginGoogleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login-google",
		Short: "Log in with Google in the system browser",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		serverCtx, stopServer := context.WithCancel(ctx)
		defer stopServer()
		server := newCallbackServer(rt)
		go runCallbackServer(serverCtx, server, rt)

		rt.app.OpenAuth(state.TabLogin)
		fmt.Fprintln(cmd.OutOrStdout(), render.WaitingForOAuth)
		fmt.Fprintf(cmd.OutOrStdout(), "If the browser does not return here, open %s once signed in\n", server.CompletionURL())
		if err := rt.app.FederatedLogin(ctx); err != nil {
			return err
		}
		printSession(cmd.OutOrStdout(), rt.store.Snapshot())
		return nil
	})
	return cmd
}

func printSession(w io.Writer, s state.State) {
	nav := render.NavFor(s.Session)
	if nav.ShowLogout {
		fmt.Fprintf(w, "Logged in as %s\n", s.Session.Email)
		return
	}
	fmt.Fprintln(w, "Not logged in")
}

// authError prefers the inline message the overlay would show
func authError(message string, err error) error {
	if message == "" {
		return err
	}
	return errors.New(message)
}

// readPassword prompts without echo on a terminal and reads a plain line
// otherwise
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return readLine(in)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
