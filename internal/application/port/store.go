// Package port defines the interfaces the application services depend on.
package port

import (
	"context"

	"github.com/Aurelio-One/p9/internal/domain/bill"
)

// File is a receipt file handed to the staging step.
type File struct {
	Name    string
	Content []byte
}

// FileRef is the store's handle for an uploaded receipt: the public URL of
// the stored file and the key of the bill record created for it.
type FileRef struct {
	FileURL string `json:"fileUrl"`
	Key     string `json:"key"`
}

// RemoteBillStore is the remote persistence boundary for bill records and
// receipt uploads. It is network-backed and fallible; every call blocks
// until the request settles.
type RemoteBillStore interface {
	// List returns all bills in store order.
	List(ctx context.Context) ([]bill.Bill, error)

	// CreateFile uploads a receipt before the rest of the bill is known
	// and creates the bill record it will belong to.
	CreateFile(ctx context.Context, file File, ownerEmail string) (FileRef, error)

	// Update persists the assembled bill identified by payload.ID.
	Update(ctx context.Context, payload bill.Bill) (bill.Bill, error)
}
