package google

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// authFlowTimeout bounds how long the loopback listener waits for the browser
// redirect before falling back to manual code entry.
const authFlowTimeout = 2 * time.Minute

// Authorize runs the interactive OAuth2 flow for the account and saves the
// resulting token. It starts a loopback listener for the redirect, prints the
// authorization URL for the user to open, and falls back to manual code entry
// when the redirect cannot be captured.
func Authorize(ctx context.Context, account string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	conf, err := getOAuthConfig()
	if err != nil {
		return err
	}

	tok, err := runLoopbackFlow(ctx, conf)
	if err != nil {
		return err
	}

	return saveTokenFile(account, tok)
}

// runLoopbackFlow performs the installed-app authorization dance with a
// loopback redirect (RFC 8252).
func runLoopbackFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		// No loopback listener available; go straight to manual entry.
		return manualCodeFlow(ctx, conf)
	}
	defer ln.Close()

	flowConf := *conf
	flowConf.RedirectURL = fmt.Sprintf("http://%s/", ln.Addr().String())

	authURL := flowConf.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Println("Open the following URL in your browser to authorize access:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()

	codeCh := make(chan string, 1)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code parameter", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authentication complete. You can close this window.")
		select {
		case codeCh <- code:
		default:
		}
	})}
	go srv.Serve(ln)
	defer srv.Close()

	select {
	case code := <-codeCh:
		tok, err := flowConf.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange auth code: %w", err)
		}
		return tok, nil
	case <-time.After(authFlowTimeout):
		fmt.Println("Timed out waiting for the browser redirect.")
		return manualCodeFlow(ctx, conf)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// manualCodeFlow prints the authorization URL with a plain localhost redirect
// and reads the code (or the full redirect URL) from stdin.
func manualCodeFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	flowConf := *conf
	flowConf.RedirectURL = "http://localhost"

	authURL := flowConf.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Println("Open the following URL in your browser:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	fmt.Println("After granting access the browser shows a connection error; copy the")
	fmt.Println("full address from the address bar (or just the code parameter).")
	fmt.Print("Paste it here: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read authorization code: %w", err)
		}
		return nil, fmt.Errorf("no authorization code entered")
	}

	code, err := parseAuthCodeInput(scanner.Text())
	if err != nil {
		return nil, err
	}

	tok, err := flowConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return tok, nil
}

// parseAuthCodeInput accepts either a bare authorization code or the full
// redirect URL and returns the code.
func parseAuthCodeInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty authorization code")
	}

	// A pasted redirect URL carries the code in its query string.
	if i := strings.IndexByte(input, '?'); i >= 0 {
		vals, err := url.ParseQuery(input[i+1:])
		if err != nil {
			return "", fmt.Errorf("failed to parse redirect URL: %w", err)
		}
		code := vals.Get("code")
		if code == "" {
			return "", fmt.Errorf("redirect URL carries no code parameter")
		}
		return code, nil
	}

	return input, nil
}
