package domain

import (
	"time"

	"github.com/google/uuid"
)

// FolderType categorizes a folder for ledger token metadata.
type FolderType string

const (
	FolderTypePersonal  FolderType = "personal"
	FolderTypeFamily    FolderType = "family"
	FolderTypeBusiness  FolderType = "business"
	FolderTypeCommunity FolderType = "community"
)

// Folder is a local application entity that can be anchored to the ledger as
// a token. TokenID is set once the folder has been synced; LastVerified only
// records the most recent successful ledger verification and is never proof
// of current ledger truth.
type Folder struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Type         FolderType `json:"type"`
	Description  string     `json:"description,omitempty"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	FileCount    int        `json:"file_count"`
	IsBlockchain bool       `json:"is_blockchain"`
	TokenID      *string    `json:"token_id,omitempty"`
	LastVerified *time.Time `json:"last_verified,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsSyncedToLedger reports whether the folder already carries a ledger token.
func (f *Folder) IsSyncedToLedger() bool {
	return f.TokenID != nil && *f.TokenID != ""
}

// IsParent reports whether the folder is a top-level folder.
func (f *Folder) IsParent() bool {
	return f.ParentID == nil
}
