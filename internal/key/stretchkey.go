package key

import (
	"sync"

	"github.com/PolarWolf314/endec/internal/utils"
)

// secretBuf is key material shared by every clone of a StretchKey.
type secretBuf struct {
	mu   sync.Mutex
	b    []byte
	refs int
}

// StretchKey is derived key material. Clones share one buffer; the buffer
// is zeroed when the last clone is destroyed.
type StretchKey struct {
	buf       *secretBuf
	destroyed bool
}

// NewStretchKey wraps b as key material. The StretchKey takes ownership of
// b and zeroes it on Destroy.
func NewStretchKey(b []byte) *StretchKey {
	return &StretchKey{buf: &secretBuf{b: b, refs: 1}}
}

// Clone returns another handle to the same key material without copying it.
func (k *StretchKey) Clone() *StretchKey {
	k.buf.mu.Lock()
	defer k.buf.mu.Unlock()
	k.buf.refs++
	return &StretchKey{buf: k.buf}
}

// Bytes returns the key material. The slice must not be retained past
// Destroy and must not be modified.
func (k *StretchKey) Bytes() []byte {
	if k.destroyed {
		return nil
	}
	return k.buf.b
}

func (k *StretchKey) Len() int {
	return len(k.Bytes())
}

// Destroy releases this handle. Calling it more than once is a no-op.
func (k *StretchKey) Destroy() {
	if k == nil || k.destroyed {
		return
	}
	k.destroyed = true

	k.buf.mu.Lock()
	defer k.buf.mu.Unlock()
	k.buf.refs--
	if k.buf.refs == 0 {
		utils.Zero(k.buf.b)
		k.buf.b = nil
	}
}

func (k *StretchKey) String() string {
	return "stretchkey[***]"
}

func (k *StretchKey) GoString() string {
	return k.String()
}
