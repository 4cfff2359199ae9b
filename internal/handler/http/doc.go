// Package http implements the story API over HTTP.
//
// Routes live under /v1: registration and login, the story feed with
// multipart upload, photo download, a reachability ping and a websocket
// change stream. Tracing, access logging, bearer authentication and gzip are
// applied as chi middleware before requests reach the service layer.
package http
