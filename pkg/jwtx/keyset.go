package jwtx

import (
	"crypto/ed25519"
	"errors"
	"sync"
)

// ErrNoKey reports a kid with no registered verification key.
var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds Ed25519 verification keys by kid. Thread-safe; the portal
// registers its boot-time signer here and the authn middleware reads from it
// on every request.
type KeySet struct {
	mu  sync.RWMutex
	pub map[string]ed25519.PublicKey
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]ed25519.PublicKey)}
}

// AddSigner registers a signer's public key under its kid.
func (k *KeySet) AddSigner(s *Signer) {
	k.Add(s.KID(), s.Public())
}

// Add registers a verification key under the given kid, replacing any
// previous key with that kid.
func (k *KeySet) Add(kid string, pub ed25519.PublicKey) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[kid] = pub
}

// Get returns the verification key for the given kid.
func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pub, ok := k.pub[kid]; ok {
		return pub, nil
	}
	return nil, ErrNoKey
}

// IsReady reports whether at least one key is loaded. The readiness probe
// checks this so the server never accepts logins it cannot verify later.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}
