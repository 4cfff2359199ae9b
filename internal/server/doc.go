// Package server runs the story API transports.
//
// The HTTP server carries the REST API and the websocket change stream, the
// gRPC server carries the health service clients probe for reachability.
// Both stop gracefully when the process receives a termination signal.
package server
