package domain

import (
	"time"

	"github.com/google/uuid"
)

// File is a local document that can be anchored to the ledger: its content is
// stored through the ledger file service and an NFT is minted under the
// owning folder's token. LedgerFileID presence marks a completed content
// upload and drives idempotent resume — a retry after a failed mint must not
// re-upload content.
type File struct {
	ID           uuid.UUID `json:"id"`
	FolderID     uuid.UUID `json:"folder_id"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mime_type"`
	Checksum     string    `json:"checksum"`
	IsBlockchain bool      `json:"is_blockchain"`
	LedgerFileID *string   `json:"ledger_file_id,omitempty"`
	TokenID      *string   `json:"token_id,omitempty"`
	SerialNumber *int64    `json:"serial_number,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// HasUploadedContent reports whether the file content already exists in the
// ledger file store.
func (f *File) HasUploadedContent() bool {
	return f.LedgerFileID != nil && *f.LedgerFileID != ""
}
