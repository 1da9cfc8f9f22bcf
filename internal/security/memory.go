package security

import (
	"crypto/rand"
	"crypto/subtle"
	"runtime"
	"sync"
	"time"
)

// SecureBytes holds secret key material that is zeroed on Destroy.
type SecureBytes struct {
	data []byte
	mu   sync.RWMutex
}

// NewSecureBytesFromSlice copies data into a new SecureBytes.
func NewSecureBytesFromSlice(data []byte) *SecureBytes {
	secure := &SecureBytes{
		data: make([]byte, len(data)),
	}
	copy(secure.data, data)
	runtime.SetFinalizer(secure, (*SecureBytes).destroy)
	return secure
}

// Use calls fn with the secret while holding the read lock, so Destroy
// waits for fn to return. fn must not retain the slice.
func (s *SecureBytes) Use(fn func(secret []byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// Len returns the length of the held secret.
func (s *SecureBytes) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Destroy zeros the memory; later calls to Use see a nil slice.
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroy()
	runtime.SetFinalizer(s, nil)
}

func (s *SecureBytes) destroy() {
	if s.data != nil {
		ZeroBytes(s.data)
		s.data = nil
	}
}

// ZeroBytes overwrites a byte slice with zeros.
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}
	clear(data)
	runtime.KeepAlive(data)
}

// SecureCompare performs constant-time comparison of two byte slices
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// SecureRandomDelay sleeps for a random 10-100µs to blur timing differences
// between failure paths.
func SecureRandomDelay() {
	var delayBytes [1]byte
	_, _ = rand.Read(delayBytes[:])
	time.Sleep(time.Duration(10+int(delayBytes[0])%90) * time.Microsecond)
}
