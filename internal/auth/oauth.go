package auth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/tickdone/ticktick-mcp/internal/config"
)

// TickTick OAuth endpoints. The token endpoint wants client credentials in
// the POST body, not basic auth.
var ticktickEndpoint = oauth2.Endpoint{
	AuthURL:   "https://ticktick.com/oauth/authorize",
	TokenURL:  "https://ticktick.com/oauth/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// Scopes requested during authorization.
var scopes = []string{"tasks:read", "tasks:write"}

// Flow drives the one-time authorization-code exchange that bootstraps a
// TickTick access token.
type Flow struct {
	conf  *oauth2.Config
	state string
}

// NewFlow builds a Flow from the client credentials in cfg
func NewFlow(cfg *config.Config) (*Flow, error) {
	if err := cfg.ValidateAuth(); err != nil {
		return nil, err
	}
	return &Flow{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     ticktickEndpoint,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
		},
		state: fmt.Sprintf("ticktick-mcp-%d", time.Now().UnixNano()),
	}, nil
}

// AuthURL returns the authorization URL the user must visit
func (f *Flow) AuthURL() string {
	return f.conf.AuthCodeURL(f.state)
}

// CaptureCode starts a listener on the redirect URI's host:port and blocks
// until TickTick redirects the browser back with an authorization code, the
// context is cancelled, or the remote side reports an error.
func (f *Flow) CaptureCode(ctx context.Context) (string, error) {
	redirect, err := url.Parse(f.conf.RedirectURL)
	if err != nil {
		return "", fmt.Errorf("invalid redirect URI %q: %w", f.conf.RedirectURL, err)
	}

	listener, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", redirect.Host, err)
	}
	defer listener.Close()

	return f.serveCallback(ctx, listener, redirect.Path)
}

// serveCallback answers a single request on the callback path and extracts
// the code. Split from CaptureCode so tests can inject their own listener.
func (f *Flow) serveCallback(ctx context.Context, listener net.Listener, path string) (string, error) {
	type result struct {
		code string
		err  error
	}
	results := make(chan result, 1)

	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if path != "" && r.URL.Path != path {
				http.NotFound(w, r)
				return
			}
			q := r.URL.Query()
			if errCode := q.Get("error"); errCode != "" {
				http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
				results <- result{err: fmt.Errorf("authorization denied: %s", errCode)}
				return
			}
			if state := q.Get("state"); state != f.state {
				http.Error(w, "State mismatch. You can close this window.", http.StatusBadRequest)
				results <- result{err: fmt.Errorf("state mismatch in OAuth callback")}
				return
			}
			code := q.Get("code")
			if code == "" {
				http.Error(w, "No authorization code received.", http.StatusBadRequest)
				results <- result{err: fmt.Errorf("callback carried no authorization code")}
				return
			}
			fmt.Fprintln(w, "Authorization complete. You can close this window and return to the terminal.")
			results <- result{code: code}
		}),
	}

	go srv.Serve(listener)
	defer srv.Close()

	select {
	case res := <-results:
		return res.code, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Exchange trades an authorization code for an access token
func (f *Flow) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := f.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return token, nil
}

// SaveTokenToEnvFile writes the access token into the .env file at path,
// replacing an existing TICKTICK_ACCESS_TOKEN line or appending one. Other
// lines are preserved verbatim.
func SaveTokenToEnvFile(path, accessToken string) error {
	line := config.EnvAccessToken + "=" + accessToken

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		return os.WriteFile(path, []byte(line+"\n"), 0600)
	}

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), config.EnvAccessToken+"=") {
			lines[i] = line
			replaced = true
		}
	}
	if !replaced {
		// Keep a trailing newline at the end of the file.
		for len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		lines = append(lines, line)
	}

	out := strings.Join(lines, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return os.WriteFile(path, []byte(out), 0600)
}

// OpenBrowser tries to open the URL in the default browser. Failure is not
// fatal; the caller prints the URL as a fallback.
func OpenBrowser(rawURL string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return exec.Command("xdg-open", rawURL).Start()
	}
}
