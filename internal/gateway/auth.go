package gateway

import "encoding/base64"

// BasicAuthToken encodes gateway credentials into an HTTP Basic-Auth token,
// usable as the value of an "Authorization: Basic <token>" header. The token
// is a credential in its own right and must never reach a log line.
func BasicAuthToken(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}
