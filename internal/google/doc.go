// Package google provides OAuth2 authentication and token management for the
// Gmail API.
//
// Client credentials come from the GOOGLE_OAUTH2_CLIENT_ID and
// GOOGLE_OAUTH2_CLIENT_SECRET environment variables, or from a credentials.json
// file in the working directory (the Google Cloud Console download format).
// Tokens are cached per account as JSON blobs under the user cache directory.
//
// The TokenProvider interface allows different token sources to be plugged in,
// so the MCP serve mode can resolve tokens the same way the CLI does.
package google
