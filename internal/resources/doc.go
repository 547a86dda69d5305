// Package resources provides MCP resources for exposing account data.
// Resources are read-only data sources that MCP clients can fetch, such as
// the Gmail profile of an authorized account.
//
// Resources are addressed per account via URI templates
// (mailsift://accounts/{account}/profile), so multiple authorized Google
// accounts can be inspected side by side.
package resources
