package core

import "context"

// ShopReader is the minimal view of the shops store that other
// domains need for authorization checks.
type ShopReader interface {
	IsOwner(ctx context.Context, shopID, userID string) (bool, error)

	ShopIDForOwner(ctx context.Context, ownerID string) (string, error)
}
