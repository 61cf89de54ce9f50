package inkwell

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Capability is the opaque authorization token required by every mutating
// store operation. The only way to obtain a granted Capability is a
// successful Verifier.Verify; the request layer holds it (in the author's
// session) and passes it into the core explicitly.
type Capability struct {
	token string
}

// Granted reports whether the capability was issued by the Verifier.
func (c Capability) Granted() bool { return c.token != "" }

// Token returns the opaque token value for storage in a session.
func (c Capability) Token() string { return c.token }

// CapabilityFromToken reconstructs a capability previously issued by Verify,
// e.g. from a session cookie. An empty token yields the zero (denied) value.
func CapabilityFromToken(token string) Capability {
	return Capability{token: token}
}

// dummyHash is a valid bcrypt hash compared against when the username is
// unknown, so a missing user costs the same as a wrong password and the
// caller cannot tell the two apart by timing or error shape.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Verifier checks presented credentials against the stored bcrypt hashes.
// The credentials table is provisioned out-of-band (SeedCredential); the
// verifier itself never writes.
type Verifier struct {
	store *Store
}

// NewVerifier returns a Verifier reading from the given store.
func NewVerifier(s *Store) *Verifier {
	return &Verifier{store: s}
}

// Verify checks username/password and, on success, issues a fresh Capability.
// Unknown user and wrong password are indistinguishable to the caller: both
// return a zero Capability and false, after a full bcrypt comparison either
// way. bcrypt compares digests in constant time and recomputes the presented
// password's hash with the salt embedded in the stored one.
func (v *Verifier) Verify(ctx context.Context, username, password string) (Capability, bool) {
	var hash string
	err := v.store.db.QueryRowContext(ctx,
		`SELECT password_hash FROM credentials WHERE username = ?`, username).Scan(&hash)
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Capability{}, false
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return Capability{}, false
	}
	return Capability{token: uuid.NewString()}, true
}

// SeedCredential provisions (or replaces) the author's credential. This is
// the out-of-band setup path used at process start and in tests; it is not
// reachable from any request handler.
func (s *Store) SeedCredential(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO credentials (username, password_hash) VALUES (?, ?)`,
		username, string(hash))
	if err != nil {
		return fmt.Errorf("seed credential: %w", err)
	}
	return nil
}
