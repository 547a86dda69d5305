// Package server provides the MCP server context and the dedicated
// Prometheus metrics listener for mailsift's serve mode.
//
// ServerContext manages Gmail API clients with lazy initialization and
// caching. Clients are keyed by account name, so one server instance can
// operate on several locally authenticated Google accounts. It also carries
// the optional metrics recorder and audit logger that instrumented tool
// handlers consult.
//
// MetricsServer serves Prometheus metrics on its own port, keeping scrape
// traffic away from the stdio transport the MCP protocol runs on.
package server
