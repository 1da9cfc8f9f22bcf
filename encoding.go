package jwtkit

import "github.com/cybergodev/jwtkit/internal/core"

// Encoding selects the text encoding of the signature segment. Header and
// payload segments are always base64url.
type Encoding int

const (
	Base64URL Encoding = Encoding(core.Base64URL)
	Base16    Encoding = Encoding(core.Base16)
	Base32    Encoding = Encoding(core.Base32)
)

func (e Encoding) String() string { return core.SignatureEncoding(e).String() }

func (e Encoding) valid() bool { return core.SignatureEncoding(e).Valid() }

// ParseEncoding accepts "base64url", "base16", "base32" or "".
func ParseEncoding(name string) (Encoding, error) {
	enc, err := core.ParseSignatureEncoding(name)
	if err != nil {
		return 0, illegalArgument("encoding", "%v", err)
	}
	return Encoding(enc), nil
}
