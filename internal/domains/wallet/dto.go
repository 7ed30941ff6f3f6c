package wallet

import (
	"crypto/ed25519"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mr-tron/base58"
)

// VerifyRequest is the body of POST /auth/wallet/verify.
// Signature is a JSON array of byte values as produced by the wallet
// extension's signMessage.
type VerifyRequest struct {
	Wallet    string `json:"wallet"`
	Message   string `json:"message"`
	Signature []int  `json:"signature"`
}

var isPublicKey = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := decodePublicKey(s); err != nil {
		return err
	}
	return nil
})

var isSignature = validation.By(func(value interface{}) error {
	sig, _ := value.([]int)
	for _, b := range sig {
		if b < 0 || b > 255 {
			return errors.New("signature values must be bytes")
		}
	}
	return nil
})

func (r VerifyRequest) Validate() error {
	r.Wallet = strings.TrimSpace(r.Wallet)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Wallet, validation.Required.Error("wallet is required"), isPublicKey),
		validation.Field(&r.Message, validation.Required.Error("message is required")),
		validation.Field(&r.Signature,
			validation.Required.Error("signature is required"),
			validation.Length(ed25519.SignatureSize, ed25519.SignatureSize).Error("signature must be 64 bytes"),
			isSignature,
		),
	)
}

func (r VerifyRequest) signatureBytes() []byte {
	out := make([]byte, len(r.Signature))
	for i, b := range r.Signature {
		out[i] = byte(b)
	}
	return out
}

func decodePublicKey(wallet string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(wallet)
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return nil, errors.New("wallet must be a base58 encoded 32 byte public key")
	}
	return ed25519.PublicKey(raw), nil
}

// SessionResponse carries the issued wallet token
type SessionResponse struct {
	Token     string    `json:"token"`
	Wallet    string    `json:"wallet"`
	ExpiresAt time.Time `json:"expiresAt"`
}
