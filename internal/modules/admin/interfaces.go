package admin

import (
	"context"

	"guidemarket/internal/domain"
	"guidemarket/internal/localstore"
	"guidemarket/internal/seed"
)

// Store is the active guide store as the admin page sees it.
type Store interface {
	seed.Target
	Source() string
	Clear(ctx context.Context) domain.Result[int]
}

// Backup is implemented by stores that can hand out their whole dataset.
type Backup interface {
	Export(ctx context.Context) domain.Result[localstore.Document]
	Import(ctx context.Context, doc localstore.Document) domain.Result[int]
}

var _ Backup = (*localstore.Store)(nil)
