// Package auth implements the one-time OAuth2 authorization-code flow that
// obtains a TickTick access token and persists it to the local .env file.
// The server itself never refreshes tokens; when the token expires the flow
// is simply run again.
package auth
