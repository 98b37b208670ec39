package httpserver

import "time"

const (
	defaultPort = "8080"

	// Server limits. The targets listing grows with the number of hosts, so writes get more time than reads.
	readTimeout       = 3 * time.Second
	readHeaderTimeout = 3 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	maxHeaderBytes    = 8 << 10

	// corsMaxAge is how long browsers may cache a preflight response, in seconds.
	corsMaxAge = 300
)
