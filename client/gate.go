package client

import (
	"crypto/subtle"

	"github.com/alexchen/atelier/localstore"
)

// Default operator credentials, matching what legacy deployments shipped.
// This gate is a UI capability only: the flag lives in freely editable local
// storage and grants no server-verified authority. The server's own session
// check is what actually protects mutations.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "123456"
)

// Gate controls visibility of admin affordances in the client. The flag
// persists across reloads under a versioned key.
type Gate struct {
	local    *localstore.Store
	username string
	password string
	admin    bool
}

// NewGate builds a Gate over the local store, restoring a persisted flag.
// Empty credentials fall back to the documented defaults.
func NewGate(local *localstore.Store, username, password string) *Gate {
	if username == "" {
		username = DefaultAdminUsername
	}
	if password == "" {
		password = DefaultAdminPassword
	}
	g := &Gate{local: local, username: username, password: password}
	_, _ = local.Get(localstore.KeyAdmin, &g.admin)
	return g
}

// Authenticate opens the gate on an exact credential match and persists the
// flag. Any other pair leaves the flag untouched and returns false; the
// caller is expected to show a visible error.
func (g *Gate) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	if !userOK || !passOK {
		return false
	}
	g.admin = true
	_ = g.local.Set(localstore.KeyAdmin, true)
	return true
}

// Logout clears the flag in memory and in the persisted copy.
func (g *Gate) Logout() {
	g.admin = false
	_ = g.local.Set(localstore.KeyAdmin, false)
}

// IsAdmin reports whether the gate is open.
func (g *Gate) IsAdmin() bool {
	return g.admin
}
