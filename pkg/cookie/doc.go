// Package cookie wraps net/http cookies with signing and encryption.
//
// A Manager is created with one or more secrets of at least 32 characters:
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//
// It offers three levels of protection:
//
//   - Set, Get, Delete for plain cookies.
//   - SetSigned, GetSigned and the JSON helpers SetJSON, GetJSON for values the
//     client may read but must not alter (HMAC-SHA256).
//   - SetEncrypted, GetEncrypted for values the client must not read
//     (AES-256-GCM, key derived from the secret with SHA-256).
//
// The first secret is used for writing. Reads try every secret, which allows
// rotating secrets by prepending the new one.
package cookie
