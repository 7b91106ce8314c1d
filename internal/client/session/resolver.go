package session

import (
	"context"
	"errors"

	"github.com/creatorlink/creatorlink/internal/client/api"
	"github.com/creatorlink/creatorlink/internal/client/models"
	"github.com/creatorlink/creatorlink/internal/client/tokenstore"
	"github.com/creatorlink/creatorlink/internal/logging"
)

// Resolution is a successfully verified stored session.
type Resolution struct {
	User  *models.User
	Token string
}

// Resolver classifies the stored credential at startup. It fails closed:
// every failure mode below comes back as "unauthenticated", because no
// interactive caller exists yet to handle an error.
type Resolver struct {
	store   tokenstore.Store
	gateway api.Gateway
	logger  logging.Logger
}

func NewResolver(store tokenstore.Store, gateway api.Gateway, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Resolver{store: store, gateway: gateway, logger: logger}
}

// Resolve reads the token store and verifies the token against the backend.
// Nil means unauthenticated. With no stored token no network call is made.
// A rejected token is cleared from the store so the next startup skips the
// round trip; a transport failure leaves the store untouched (the token may
// still be good once the backend is reachable) but still resolves to
// unauthenticated.
func (r *Resolver) Resolve(ctx context.Context) *Resolution {
	token, err := r.store.Read(ctx)
	if err != nil {
		r.logger.Warn(ctx, "token store unreadable, resolving unauthenticated", "error", err)
		return nil
	}
	if token == "" {
		return nil
	}

	r.gateway.SetToken(token)
	user, err := r.gateway.CurrentUser(ctx)
	if err != nil {
		r.gateway.SetToken("")
		if errors.Is(err, api.ErrUnauthorized) {
			// Expired or revoked. Never retried: the user has to
			// authenticate again.
			if cerr := r.store.Clear(ctx); cerr != nil {
				r.logger.Warn(ctx, "clearing stale token failed", "error", cerr)
			}
			r.logger.Info(ctx, "stored token rejected, session expired")
			return nil
		}
		r.logger.Warn(ctx, "session verification failed, resolving unauthenticated", "error", err)
		return nil
	}

	return &Resolution{User: user, Token: token}
}
