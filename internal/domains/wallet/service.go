package wallet

import (
	"context"
	"crypto/ed25519"
	"strings"
	"time"

	"event-manager/pkg/clock"

	"github.com/rs/zerolog/log"
)

// IssuedAtPrefix separates the configured sign in text from the time the
// browser created the message.
const IssuedAtPrefix = "\nIssued At: "

// SignInWindow bounds how far the issued-at time may be from the server clock
const SignInWindow = 5 * time.Minute

// TokenIssuer signs session tokens for a verified wallet
type TokenIssuer interface {
	GenerateWalletToken(wallet string) (string, time.Time, error)
}

type Service interface {
	// Verify checks that wallet signed the sign in message and issues a token
	Verify(ctx context.Context, req VerifyRequest) (*SessionResponse, error)
}

type service struct {
	signInMessage string
	tokens        TokenIssuer
	clock         clock.Clock
}

func NewService(signInMessage string, tokens TokenIssuer, clk clock.Clock) Service {
	return &service{signInMessage: signInMessage, tokens: tokens, clock: clk}
}

// checkMessage accepts "<sign in message>\nIssued At: <RFC3339 time>" when
// the time is within SignInWindow of now.
func (s *service) checkMessage(message string) error {
	issued, ok := strings.CutPrefix(message, s.signInMessage+IssuedAtPrefix)
	if !ok {
		return ErrMessageMismatch
	}
	issuedAt, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(issued))
	if err != nil {
		return ErrMessageMismatch
	}
	age := s.clock.Now().Sub(issuedAt)
	if age > SignInWindow || age < -SignInWindow {
		return ErrMessageExpired
	}
	return nil
}

func (s *service) Verify(ctx context.Context, req VerifyRequest) (*SessionResponse, error) {
	req.Wallet = strings.TrimSpace(req.Wallet)
	if err := req.Validate(); err != nil {
		return nil, newInvalidRequest(err)
	}

	if err := s.checkMessage(req.Message); err != nil {
		return nil, err
	}

	pub, err := decodePublicKey(req.Wallet)
	if err != nil {
		return nil, newInvalidRequest(err)
	}

	if !ed25519.Verify(pub, []byte(req.Message), req.signatureBytes()) {
		log.Warn().Str("wallet", req.Wallet).Msg("wallet signature rejected")
		return nil, ErrBadSignature
	}

	token, expiresAt, err := s.tokens.GenerateWalletToken(req.Wallet)
	if err != nil {
		return nil, newTokenError(err)
	}

	log.Info().Str("wallet", req.Wallet).Msg("wallet signed in")
	return &SessionResponse{Token: token, Wallet: req.Wallet, ExpiresAt: expiresAt}, nil
}
