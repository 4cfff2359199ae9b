// Package host models the environment the client runs in: whether the story
// view is visible to the user and whether the story API is reachable.
// Both report changes to subscribers.
package host
