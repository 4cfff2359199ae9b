// Package client runs the story reader: it restores or establishes the API
// session, starts the sync engine with its background triggers and hands the
// terminal to the story feed until the user quits.
package client
