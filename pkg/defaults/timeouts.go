package defaults

import "time"

// Handler timeouts for HTTP request processing.
const (
	// DishesHandlerTimeout bounds a full lookup-then-query pipeline run,
	// covering both outbound calls to the record store.
	DishesHandlerTimeout = 25 * time.Second

	// ResponseWriteMargin is the time left after a handler deadline to
	// write the error response before the server write deadline.
	ResponseWriteMargin = 5 * time.Second

	// MaxRequestBodyBytes caps POST bodies accepted by the API.
	MaxRequestBodyBytes = 1 << 20
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = DishesHandlerTimeout + ResponseWriteMargin

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 20 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Record store query limits.
const (
	// PageSize is the number of records requested from a filtered list query.
	// Only the first page is ever read.
	PageSize = 50

	// MaxPageSize is the largest page the record store accepts.
	MaxPageSize = 100

	// UpstreamErrorBodyLimit caps how much of a failed upstream body is kept
	// for the error message.
	UpstreamErrorBodyLimit = 4 << 10
)

// Sampling limits.
const (
	// SampleSize is the number of dishes returned per response.
	SampleSize = 3
)
