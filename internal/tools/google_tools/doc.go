// Package google_tools provides MCP tools for Google OAuth authentication.
//
// This package registers OAuth-related tools that allow AI assistants to:
//   - Check whether an account already has a cached token
//   - Get the OAuth authorization URL for Gmail access
//   - Save the OAuth authorization code to complete authentication
//
// The OAuth flow:
//  1. Call google_auth_status to check if a token exists
//  2. If not, call google_auth_url to get the authorization URL
//  3. User visits the URL and authorizes access
//  4. User provides the authorization code
//  5. Call google_save_auth_code with the code to save the token
//
// Once authenticated, all Gmail tools will work seamlessly with the saved
// token, which is automatically refreshed as needed. Tokens are cached per
// account name so multiple Google accounts can be authorized side by side.
package google_tools
