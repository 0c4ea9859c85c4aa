package handlers

import "net/http"

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to the server"

// Welcome answers the root path with the fixed greeting payload.
func Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Message: WelcomeMessage, Success: true})
}

// NotFound answers an unmatched request with "Cannot <METHOD> <path>".
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, Response{
		Message: "Cannot " + r.Method + " " + r.URL.Path,
		Success: false,
	})
}

//Personal.AI order the ending
