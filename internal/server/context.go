package server

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/mailsift/mailsift/internal/gmail"
	"github.com/mailsift/mailsift/internal/google"
	"github.com/mailsift/mailsift/internal/instrumentation"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	tokens       google.TokenProvider
	gmailClients map[string]*gmail.Client // Maps account name to Gmail client
	metrics      *instrumentation.Metrics
	auditLogger  *instrumentation.AuditLogger
	mu           sync.RWMutex
	shutdown     bool
}

// NewServerContext creates a server context backed by the on-disk token cache.
func NewServerContext(ctx context.Context) (*ServerContext, error) {
	return NewServerContextWithTokenProvider(ctx, google.NewFileTokenProvider())
}

// NewServerContextWithTokenProvider creates a server context that resolves
// OAuth tokens through the given provider.
func NewServerContextWithTokenProvider(ctx context.Context, tokens google.TokenProvider) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		tokens:       tokens,
		gmailClients: make(map[string]*gmail.Client),
		shutdown:     false,
	}

	// Try to create the default Gmail client, but don't fail if the token is
	// missing; clients are lazily initialized when first needed.
	if tokens.HasTokenForAccount("default") {
		sc.GmailClientForAccount("default")
	}

	return sc, nil
}

// TokenProvider returns the provider this context resolves tokens through.
func (sc *ServerContext) TokenProvider() google.TokenProvider {
	return sc.tokens
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// GmailClientForAccount returns the Gmail client for a specific account.
// Creates and caches the client if it doesn't exist yet.
// Returns nil if the account has no token.
func (sc *ServerContext) GmailClientForAccount(account string) *gmail.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Check if client already exists
	if client, ok := sc.gmailClients[account]; ok {
		return client
	}

	// Try to create client if the provider has a token
	if !sc.tokens.HasTokenForAccount(account) {
		return nil
	}

	tok, err := sc.tokens.GetTokenForAccount(sc.ctx, account)
	if err != nil {
		// Stderr so the stdio transport stays clean.
		fmt.Fprintf(os.Stderr, "Warning: failed to get token for account %s: %v\n", account, err)
		return nil
	}

	client, err := gmail.NewClientWithToken(sc.ctx, account, tok)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create Gmail client for account %s: %v\n", account, err)
		return nil
	}

	sc.gmailClients[account] = client
	return client
}

// GmailClient returns the Gmail client for the default account
func (sc *ServerContext) GmailClient() *gmail.Client {
	return sc.GmailClientForAccount("default")
}

// SetGmailClientForAccount sets the Gmail client for a specific account
func (sc *ServerContext) SetGmailClientForAccount(account string, client *gmail.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gmailClients[account] = client
}

// SetGmailClient sets the Gmail client for the default account
func (sc *ServerContext) SetGmailClient(client *gmail.Client) {
	sc.SetGmailClientForAccount("default", client)
}

// DropGmailClientForAccount discards a cached client, forcing the next use to
// rebuild it from the token cache. Called after re-authentication.
func (sc *ServerContext) DropGmailClientForAccount(account string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.gmailClients, account)
}

// SetMetrics sets the metrics recorder used by instrumented tool handlers
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil when instrumentation is off
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used by instrumented tool handlers
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil when auditing is off
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
