package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"alias-wallet-orchestrator/internal/core/ports"
	"alias-wallet-orchestrator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/hkdf"
)

const vaultKeyPrefix = "walletkey_"

// KeyCustodianImpl implements ports.KeyCustodian with AES-256-GCM. Each
// wallet's wrapping key is derived from the master secret via HKDF-SHA256
// with the wallet id as context, so no two wallets share a wrapping key and
// deleting one wallet's material cannot touch another's. This component is
// the sole holder of the master secret.
type KeyCustodianImpl struct {
	masterSecret []byte
	vault        ports.CredentialVault
	log          zerolog.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewKeyCustodian creates a new KeyCustodianImpl.
// hexSecret must be a 64-character hex string (32 bytes decoded).
func NewKeyCustodian(hexSecret string, vault ports.CredentialVault, log zerolog.Logger) (*KeyCustodianImpl, error) {
	secret, err := hex.DecodeString(hexSecret)
	if err != nil {
		return nil, fmt.Errorf("decoding custody master secret: %w", err)
	}
	if len(secret) != 32 {
		return nil, fmt.Errorf("custody master secret must be 32 bytes, got %d", len(secret))
	}
	return &KeyCustodianImpl{
		masterSecret: secret,
		vault:        vault,
		log:          log,
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}, nil
}

// EncryptAndStore wraps the private key and writes the ciphertext to the
// vault under the wallet's namespaced entry.
func (c *KeyCustodianImpl) EncryptAndStore(ctx context.Context, walletID uuid.UUID, privateKey []byte) error {
	lock := c.walletLock(walletID)
	lock.Lock()
	defer lock.Unlock()

	aesGCM, err := c.cipherFor(walletID)
	if err != nil {
		return apperror.ErrKeyCustodyFailure(err)
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return apperror.ErrKeyCustodyFailure(fmt.Errorf("generating nonce: %w", err))
	}

	ciphertext := aesGCM.Seal(nonce, nonce, privateKey, nil)
	if err := c.vault.Put(ctx, vaultKey(walletID), ciphertext); err != nil {
		return apperror.ErrKeyCustodyFailure(fmt.Errorf("vault put: %w", err))
	}

	c.log.Info().Str("wallet_id", walletID.String()).Msg("private key placed into custody")
	return nil
}

// Retrieve unwraps the wallet's private key from the vault. It fails closed:
// a missing entry or a decrypt failure both return KEY_001.
func (c *KeyCustodianImpl) Retrieve(ctx context.Context, walletID uuid.UUID) ([]byte, error) {
	ciphertext, err := c.vault.Get(ctx, vaultKey(walletID))
	if err != nil {
		return nil, apperror.ErrKeyUnavailable(fmt.Errorf("vault get: %w", err))
	}
	if ciphertext == nil {
		return nil, apperror.ErrKeyUnavailable(fmt.Errorf("no custody entry for wallet %s", walletID))
	}

	aesGCM, err := c.cipherFor(walletID)
	if err != nil {
		return nil, apperror.ErrKeyUnavailable(err)
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, apperror.ErrKeyUnavailable(fmt.Errorf("ciphertext too short"))
	}

	nonce, sealed := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, apperror.ErrKeyUnavailable(fmt.Errorf("decrypting: %w", err))
	}
	return plaintext, nil
}

// Delete removes the wallet's custody entry.
func (c *KeyCustodianImpl) Delete(ctx context.Context, walletID uuid.UUID) error {
	lock := c.walletLock(walletID)
	lock.Lock()
	defer lock.Unlock()

	if err := c.vault.Delete(ctx, vaultKey(walletID)); err != nil {
		return apperror.ErrKeyCustodyFailure(fmt.Errorf("vault delete: %w", err))
	}
	return nil
}

// cipherFor derives the wallet's wrapping key and builds its GCM cipher.
func (c *KeyCustodianImpl) cipherFor(walletID uuid.UUID) (cipher.AEAD, error) {
	kdf := hkdf.New(sha256.New, c.masterSecret, nil, []byte(vaultKey(walletID)))
	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("deriving wallet key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// walletLock returns the per-wallet mutex serializing vault writers.
func (c *KeyCustodianImpl) walletLock(walletID uuid.UUID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[walletID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[walletID] = lock
	}
	return lock
}

func vaultKey(walletID uuid.UUID) string {
	return vaultKeyPrefix + walletID.String()
}
