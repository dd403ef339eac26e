package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/signet/pkg/jwtx"
)

// InitKeyStore creates the in-memory key store and generates the first
// signing key. Keys are ephemeral: a restart invalidates every token
// issued before it.
func InitKeyStore(cfg Config, logger *slog.Logger) (*jwtx.KeyStore, error) {
	keys := jwtx.NewKeyStore(jwtx.KeyStoreOptions{
		RSABits: cfg.RSABits,
	})

	kid, err := keys.GenerateKey(cfg.KeyValidity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate initial signing key: %w", err)
	}

	logger.Info("generated ephemeral signing key",
		"kid", kid,
		"validity", cfg.KeyValidity,
		"issuer", cfg.Issuer,
	)
	logger.Warn("all previously issued tokens are now invalid")

	return keys, nil
}
