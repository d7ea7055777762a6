package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickdone/ticktick-mcp/internal/auth"
	"github.com/tickdone/ticktick-mcp/internal/config"
	"github.com/tickdone/ticktick-mcp/internal/logging"
	"github.com/tickdone/ticktick-mcp/internal/ticktick"
)

// authTimeout bounds how long we wait for the user to complete the
// browser flow.
const authTimeout = 5 * time.Minute

func newAuthCmd() *cobra.Command {
	var (
		debugMode bool
		envFile   string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with TickTick via OAuth",
		Long: `Run the one-time OAuth authorization flow against TickTick and save the
resulting access token to a .env file.

Prerequisites:
  Register an app at https://developer.ticktick.com and set the
  TICKTICK_CLIENT_ID and TICKTICK_CLIENT_SECRET environment variables
  (or place them in the .env file). The app's redirect URI must match
  TICKTICK_REDIRECT_URI (default: http://localhost:8080/callback).

The command opens the authorization page in your browser, waits for the
redirect on the local callback port, exchanges the code for an access
token, verifies it against the TickTick API, and writes it to the .env
file as TICKTICK_ACCESS_TOKEN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(debugMode, envFile)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path of the .env file to write the access token to")

	return cmd
}

func runAuth(debugMode bool, envFile string) error {
	logging.Setup(debugMode)

	cfg := config.Load()
	if err := cfg.ValidateAuth(); err != nil {
		return err
	}

	flow, err := auth.NewFlow(cfg)
	if err != nil {
		return fmt.Errorf("failed to prepare OAuth flow: %w", err)
	}

	authURL := flow.AuthURL()
	fmt.Println("Opening the TickTick authorization page in your browser.")
	fmt.Println("If it does not open automatically, visit:")
	fmt.Printf("\n  %s\n\n", authURL)

	if err := auth.OpenBrowser(authURL); err != nil {
		// The URL is printed above; the user can open it manually.
		fmt.Printf("Could not open browser: %v\n", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	fmt.Println("Waiting for authorization...")
	code, err := flow.CaptureCode(ctx)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	token, err := flow.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}

	// Verify the token works before persisting it.
	client, err := ticktick.NewClient(token.AccessToken)
	if err != nil {
		return err
	}
	if _, err := client.ListProjects(ctx); err != nil {
		return fmt.Errorf("token verification failed: %w", err)
	}

	if err := auth.SaveTokenToEnvFile(envFile, token.AccessToken); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	fmt.Printf("✅ Authentication successful. Access token saved to %s\n", envFile)
	fmt.Println("You can now start the server with: ticktick-mcp serve")
	return nil
}
