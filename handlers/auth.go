package handlers

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	unauthorizedMissingMessage = "Unauthorized: Required Credentials"
	unauthorizedInvalidMessage = "Unauthorized: Invalid credentials."
)

// BasicAuth guards the private routes with a single configured credential.
// The password may be given in plain text or as a bcrypt hash.
type BasicAuth struct {
	username     string
	password     string
	passwordHash []byte
}

func NewBasicAuth(username, password string) (*BasicAuth, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("api username and password must be configured")
	}
	auth := &BasicAuth{username: username}
	if isBcryptHash(password) {
		auth.passwordHash = []byte(password)
	} else {
		auth.password = password
	}
	return auth, nil
}

func isBcryptHash(s string) bool {
	if !strings.HasPrefix(s, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

func (a *BasicAuth) valid(username, password string) bool {
	userOk := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	var passOk bool
	if a.passwordHash != nil {
		passOk = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	} else {
		passOk = subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	}
	return userOk && passOk
}

func (a *BasicAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.Header().Set("WWW-Authenticate", `Basic realm="ens-api"`)
			sendErrorResponse(w, r.URL.String(), http.StatusUnauthorized, unauthorizedMissingMessage)
			return
		}
		username, password, ok := r.BasicAuth()
		if !ok || !a.valid(username, password) {
			logger.WithField("remote", r.RemoteAddr).Warn("rejected api credentials")
			sendErrorResponse(w, r.URL.String(), http.StatusUnauthorized, unauthorizedInvalidMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}
