package common

// GetAccountFromArgs extracts the account name from request arguments,
// defaulting to "default" when the argument is absent or empty. Account
// isolation happens entirely through the local token cache, so the argument
// is the only account signal a request carries.
func GetAccountFromArgs(args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}
