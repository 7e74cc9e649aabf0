// Package gate implements the admin login gate: a small state machine
// guarding the dashboard behind the site password.
package gate

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// State is the gate's authentication state.
type State string

const (
	// Unauthenticated is the initial state; the public site is shown.
	Unauthenticated State = "unauthenticated"
	// LoginPrompted means the password prompt is open.
	LoginPrompted State = "login_prompted"
	// Authenticated means the password matched; the dashboard is reachable.
	Authenticated State = "authenticated"
)

// Status is a point-in-time snapshot of the gate.
type Status struct {
	State      State `json:"state"`
	AdminMode  bool  `json:"adminMode"`
	LoginError bool  `json:"loginError"`
}

// Gate holds authentication state in memory only: a process restart always
// returns to Unauthenticated. There is no lockout, throttling, or expiry.
type Gate struct {
	mu       sync.Mutex
	password func() string
	errTTL   time.Duration

	state      State
	adminMode  bool
	loginError bool
	errEpoch   int

	tokens map[string]struct{}
}

// New builds a gate. password is a live lookup so a changed site password
// applies to the next submission. errTTL is how long a failed-login
// indicator stays set before clearing on its own.
func New(password func() string, errTTL time.Duration) *Gate {
	if errTTL <= 0 {
		errTTL = 2 * time.Second
	}
	return &Gate{
		password: password,
		errTTL:   errTTL,
		state:    Unauthenticated,
		tokens:   make(map[string]struct{}),
	}
}

// RequestAccess opens the login prompt.
func (g *Gate) RequestAccess() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Unauthenticated {
		g.state = LoginPrompted
	}
	return g.status()
}

// Cancel closes the prompt without authenticating.
func (g *Gate) Cancel() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == LoginPrompted {
		g.state = Unauthenticated
		g.loginError = false
		g.errEpoch++
	}
	return g.status()
}

// Submit evaluates a credential. On a match the prompt closes, the gate
// becomes Authenticated with admin mode active, and an opaque session
// token is returned. On a mismatch the prompt stays open and a transient
// error flag is raised, clearing itself after the configured delay.
func (g *Gate) Submit(credential string) (token string, status Status) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Unauthenticated {
		g.state = LoginPrompted
	}
	if g.state != LoginPrompted {
		return "", g.status()
	}

	if credential != g.password() {
		g.loginError = true
		g.errEpoch++
		epoch := g.errEpoch
		time.AfterFunc(g.errTTL, func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if g.errEpoch == epoch {
				g.loginError = false
			}
		})
		return "", g.status()
	}

	g.state = Authenticated
	g.adminMode = true
	g.loginError = false
	g.errEpoch++
	token = newToken()
	g.tokens[token] = struct{}{}
	return token, g.status()
}

// ToggleMode flips between the dashboard and the public view. It is a view
// toggle, not a re-auth, and only has effect once authenticated.
func (g *Gate) ToggleMode() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Authenticated {
		g.adminMode = !g.adminMode
	}
	return g.status()
}

// Logout revokes one session token. When the last token goes, the gate
// returns to Unauthenticated.
func (g *Gate) Logout(token string) Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.tokens, token)
	if len(g.tokens) == 0 && g.state == Authenticated {
		g.state = Unauthenticated
		g.adminMode = false
	}
	return g.status()
}

// Authorized reports whether token belongs to a live admin session.
func (g *Gate) Authorized(token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Authenticated {
		return false
	}
	_, ok := g.tokens[token]
	return ok
}

// Snapshot returns the current status.
func (g *Gate) Snapshot() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status()
}

func (g *Gate) status() Status {
	return Status{State: g.state, AdminMode: g.adminMode, LoginError: g.loginError}
}

func newToken() string {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
