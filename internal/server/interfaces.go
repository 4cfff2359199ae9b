package server

// Server is anything with a blocking run and a graceful stop: the story
// server as a whole and each of its transports.
type Server interface {
	// RunServer blocks until the server stops.
	RunServer()
	// Shutdown stops accepting work and waits for in-flight requests.
	Shutdown()
}
