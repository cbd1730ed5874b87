// Package clientip extracts the end user's address from HTTP requests,
// honouring the usual reverse proxy headers. Middleware stores the address
// in the request context for handlers that do not hold the request.
package clientip
