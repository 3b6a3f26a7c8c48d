package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

type otpEntry struct {
	code      string
	createdAt time.Time
}

// OTPCache is a process-local, time-bounded one-time-code store keyed by
// email. At most one live code exists per email; issuing again overwrites.
// Entries do not survive a restart.
type OTPCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]otpEntry
}

// NewOTPCache creates a cache whose entries expire after ttl.
func NewOTPCache(ttl time.Duration) *OTPCache {
	return &OTPCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]otpEntry),
	}
}

// Issue generates a random 6-digit code for the email, replacing any
// previous entry.
func (c *OTPCache) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", Internal(err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	c.mu.Lock()
	c.entries[email] = otpEntry{code: code, createdAt: c.now()}
	c.mu.Unlock()

	return code, nil
}

// Verify checks the code against the live entry. The entry is kept either
// way so the client can retry within the window; deletion happens at the
// password-reset step.
func (c *OTPCache) Verify(email, code string) error {
	c.mu.Lock()
	entry, ok := c.entries[email]
	c.mu.Unlock()

	if !ok || entry.code != code {
		return ErrOtpInvalid
	}
	if c.now().Sub(entry.createdAt) > c.ttl {
		return ErrOtpExpired
	}
	return nil
}

// Has reports whether an entry exists for the email.
func (c *OTPCache) Has(email string) bool {
	c.mu.Lock()
	_, ok := c.entries[email]
	c.mu.Unlock()
	return ok
}

// Consume deletes the entry. It is a no-op if none exists.
func (c *OTPCache) Consume(email string) {
	c.mu.Lock()
	delete(c.entries, email)
	c.mu.Unlock()
}
