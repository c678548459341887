// Package ping contains handlers for pinging the server
package ping

import "net/http"

// HandlePing reports that the server is up.
func HandlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
