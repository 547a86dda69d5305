package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// cacheDirName is the subdirectory of the user cache dir holding tokens.
	cacheDirName = "mailsift"

	// credentialsFile is the fallback client credentials file, in the format
	// downloaded from the Google Cloud Console.
	credentialsFile = "credentials.json"

	// EnvClientID and EnvClientSecret name the environment variables that
	// carry the OAuth client credentials.
	EnvClientID     = "GOOGLE_OAUTH2_CLIENT_ID"
	EnvClientSecret = "GOOGLE_OAUTH2_CLIENT_SECRET"
)

// accountNameRe restricts account names to filename-safe characters.
var accountNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName rejects account names that could escape the cache
// directory or produce surprising file names.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name must not be empty")
	}
	if !accountNameRe.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, '-' and '_' are allowed", account)
	}
	return nil
}

// getTokenFilePath returns the token cache file for the given account.
func getTokenFilePath(account string) string {
	return filepath.Join(userCacheDir(), cacheDirName, "google-"+account+".token")
}

// legacyTokenFilePath is the single-account token location used before named
// accounts existed.
func legacyTokenFilePath() string {
	return filepath.Join(userCacheDir(), cacheDirName, "google.token")
}

// MigrateDefaultToken moves a token saved under the legacy single-account
// path to the per-account location for "default". It is a no-op when there is
// nothing to migrate and idempotent when run repeatedly.
func MigrateDefaultToken() error {
	oldPath := legacyTokenFilePath()
	data, err := os.ReadFile(oldPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read legacy token file: %w", err)
	}

	newPath := getTokenFilePath("default")
	if _, err := os.Stat(newPath); err == nil {
		// Both exist; keep the per-account file and drop the legacy one.
		return os.Remove(oldPath)
	}

	if err := os.WriteFile(newPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write migrated token file: %w", err)
	}
	return os.Remove(oldPath)
}

// HasTokenForAccount checks if a cached OAuth token exists for the account.
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	if _, err := os.Stat(getTokenFilePath(account)); err == nil {
		return true
	}
	if account == "default" {
		_, err := os.Stat(legacyTokenFilePath())
		return err == nil
	}
	return false
}

// HasToken checks if a cached OAuth token exists for the default account.
func HasToken() bool {
	return HasTokenForAccount("default")
}

// getOAuthConfig builds the OAuth2 configuration from the environment or a
// local credentials.json file.
func getOAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv(EnvClientID)
	clientSecret := os.Getenv(EnvClientSecret)
	if clientID != "" && clientSecret != "" {
		return &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  "http://localhost",
			Scopes:       DefaultOAuthScopes,
		}, nil
	}

	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no OAuth client credentials: set %s and %s, or place %s (downloaded from the Google Cloud Console) in the working directory",
				EnvClientID, EnvClientSecret, credentialsFile)
		}
		return nil, fmt.Errorf("failed to read %s: %w", credentialsFile, err)
	}

	conf, err := google.ConfigFromJSON(b, DefaultOAuthScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", credentialsFile, err)
	}
	return conf, nil
}

// GetAuthURLForAccount returns the OAuth URL for user authorization. The
// redirect target is plain localhost: after granting access the browser shows
// a connection error and the authorization code can be copied from the
// address bar.
func GetAuthURLForAccount(account string) (string, error) {
	if err := validateAccountName(account); err != nil {
		return "", err
	}
	conf, err := getOAuthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// SaveTokenForAccount exchanges an authorization code for tokens and saves
// them for the account.
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	conf, err := getOAuthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	return saveTokenFile(account, t)
}

// SaveToken exchanges an authorization code for the default account.
func SaveToken(ctx context.Context, authCode string) error {
	return SaveTokenForAccount(ctx, "default", authCode)
}

// saveTokenFile writes the token blob atomically so an interrupted run cannot
// leave a truncated cache behind.
func saveTokenFile(account string, tok *oauth2.Token) error {
	dir := filepath.Join(userCacheDir(), cacheDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "token-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close token file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set token file mode: %w", err)
	}
	return os.Rename(tmpName, getTokenFilePath(account))
}

// loadTokenFile reads the cached token blob for the account.
func loadTokenFile(account string) (*oauth2.Token, error) {
	data, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, err
	}
	tok := new(oauth2.Token)
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("invalid token file format: %w", err)
	}
	return tok, nil
}

// GetTokenSourceForAccount returns an OAuth2 token source backed by the
// cached token for the account. Expired tokens are refreshed transparently
// and the refreshed token is written back to the cache.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}
	if err := MigrateDefaultToken(); err != nil {
		return nil, err
	}

	conf, err := getOAuthConfig()
	if err != nil {
		return nil, err
	}

	cached, err := loadTokenFile(account)
	if err != nil {
		return nil, fmt.Errorf("no Google OAuth token found for account %s: %w", account, err)
	}

	ts := conf.TokenSource(ctx, cached)

	// Validate the token; this refreshes it when it has expired.
	tok, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("cached token for account %s is invalid: %w", account, err)
	}
	if tok.AccessToken != cached.AccessToken {
		if err := saveTokenFile(account, tok); err != nil {
			return nil, fmt.Errorf("failed to save refreshed token: %w", err)
		}
	}

	return ts, nil
}

// GetTokenSource returns a token source for the default account.
func GetTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	return GetTokenSourceForAccount(ctx, "default")
}

// GetHTTPClientForAccount returns an HTTP client configured with OAuth2
// authentication for the account. The client is pinned to HTTP/1.1 to avoid
// sporadic HTTP/2 stream errors against the Google APIs.
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	return newHTTP1Client(ctx, ts), nil
}

// NewHTTPClientForToken wraps a token obtained elsewhere, typically from a
// TokenProvider, in an authenticated HTTP client. The token refreshes through
// the OAuth config but is never written back to the file cache.
func NewHTTPClientForToken(ctx context.Context, tok *oauth2.Token) (*http.Client, error) {
	conf, err := getOAuthConfig()
	if err != nil {
		return nil, err
	}
	return newHTTP1Client(ctx, conf.TokenSource(ctx, tok)), nil
}

// newHTTP1Client builds an OAuth client pinned to HTTP/1.1.
func newHTTP1Client(ctx context.Context, ts oauth2.TokenSource) *http.Client {
	client := oauth2.NewClient(ctx, ts)

	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	return client
}

// GetHTTPClient returns an authenticated HTTP client for the default account.
func GetHTTPClient(ctx context.Context) (*http.Client, error) {
	return GetHTTPClientForAccount(ctx, "default")
}

// GetAuthenticationErrorMessage returns the guidance shown when an operation
// needs a token that does not exist for the account.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf(`Google OAuth token not found for account %q.

Run:

    mailsift auth --account %s

to sign in with your Google account and grant read-only Gmail access. The
token is cached under %s and refreshed automatically.`,
		account, account, filepath.Join(userCacheDir(), cacheDirName))
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
		panic("No Windows TEMP or TMP environment variables found")
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
