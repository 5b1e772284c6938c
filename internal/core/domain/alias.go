package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const aliasPrefix = "wallet"

// DeriveAlias builds the globally-unique, human-correlatable handle that is
// bound to a wallet at account creation. It is deterministic given
// (userID, email, t) for auditability, while the truncated hashes keep the
// raw identifiers unguessable from the alias alone.
func DeriveAlias(userID uuid.UUID, email string, t time.Time) string {
	uidHash := shortHash(userID.String())
	emailHash := shortHash(email)
	return fmt.Sprintf("%s_%s_%s_%d", aliasPrefix, uidHash, emailHash, t.UnixMilli())
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}
