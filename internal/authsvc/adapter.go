package authsvc

import (
	"context"
	"time"

	"github.com/summitmls/reso-odata-gateway/internal/tokenstore"
)

// StoreAdapter satisfies the Store interface on top of a concrete
// *tokenstore.Store, translating its *tokenstore.Token results into
// *StoredToken so this package's public contract doesn't leak the
// tokenstore package's own type.
type StoreAdapter struct {
	Store *tokenstore.Store
}

func (a *StoreAdapter) Save(ctx context.Context, token, clientID string, expiresAt time.Time) error {
	return a.Store.Save(ctx, token, clientID, expiresAt)
}

func (a *StoreAdapter) Get(ctx context.Context, token string) (*StoredToken, error) {
	t, err := a.Store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	return &StoredToken{ClientID: t.ClientID, ExpiresAt: t.ExpiresAt}, nil
}

func (a *StoreAdapter) Delete(ctx context.Context, token string) error {
	return a.Store.Delete(ctx, token)
}

func (a *StoreAdapter) SaveRefresh(ctx context.Context, token, clientID string, expiresAt time.Time) error {
	return a.Store.SaveRefresh(ctx, token, clientID, expiresAt)
}

func (a *StoreAdapter) GetRefresh(ctx context.Context, token string) (*StoredToken, error) {
	t, err := a.Store.GetRefresh(ctx, token)
	if err != nil {
		return nil, err
	}
	return &StoredToken{ClientID: t.ClientID, ExpiresAt: t.ExpiresAt}, nil
}

func (a *StoreAdapter) DeleteRefresh(ctx context.Context, token string) error {
	return a.Store.DeleteRefresh(ctx, token)
}

func (a *StoreAdapter) Cleanup(ctx context.Context) error {
	return a.Store.Cleanup(ctx)
}
