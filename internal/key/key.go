// Package key turns a passphrase into cipher key material.
//
// A Key is the raw passphrase as given by the user. Stretch runs it through
// the chain of slow hashes of a strategy, salted with a Salt, and produces
// a StretchKey. Stretching is deliberately expensive, so a decrypt batch
// keeps stretched keys in a Cache keyed by salt.
package key

import (
	"fmt"

	"github.com/PolarWolf314/endec/internal/utils"

	"github.com/nbutton23/zxcvbn-go"
)

// WeakScore is the strength score below which a key is considered weak.
const WeakScore = 3

// Strength is an estimate of how hard a passphrase is to guess.
type Strength struct {
	// Score ranges from 0 (trivial) to 4 (very strong).
	Score int

	// Entropy is the estimated entropy in bits.
	Entropy float64

	// CrackTime is a human readable estimate, such as "3 hours".
	CrackTime string
}

// Key is a raw passphrase with its strength estimate.
type Key struct {
	secret   []byte
	strength Strength
}

// New creates a Key from a passphrase and estimates its strength.
func New(secret string) Key {
	est := zxcvbn.PasswordStrength(secret, nil)
	return Key{
		secret: []byte(secret),
		strength: Strength{
			Score:     est.Score,
			Entropy:   est.Entropy,
			CrackTime: est.CrackTimeDisplay,
		},
	}
}

func (k Key) Strength() Strength { return k.strength }

// IsWeak reports whether the strength score is below WeakScore.
func (k Key) IsWeak() bool { return k.strength.Score < WeakScore }

func (k Key) IsEmpty() bool { return len(k.secret) == 0 }

// Equal compares only the secret, not the strength estimate.
func (k Key) Equal(o Key) bool {
	return utils.ConstantTimeEqual(k.secret, o.secret)
}

// Destroy zeroes the secret. The Key is empty afterwards.
func (k *Key) Destroy() {
	utils.Zero(k.secret)
	k.secret = nil
}

func (k Key) String() string {
	return fmt.Sprintf("key[score %d]", k.strength.Score)
}

func (k Key) GoString() string {
	return k.String()
}
