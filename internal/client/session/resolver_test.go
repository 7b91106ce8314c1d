package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creatorlink/creatorlink/internal/client/api"
	"github.com/creatorlink/creatorlink/internal/client/models"
)

func TestResolve_NoStoredToken_NoNetworkCall(t *testing.T) {
	st := &fakeStore{}
	gw := &fakeGateway{}
	r := NewResolver(st, gw, nil)

	res := r.Resolve(context.Background())

	require.Nil(t, res)
	require.Zero(t, gw.CurrentUserCalls)
}

func TestResolve_AcceptedToken(t *testing.T) {
	st := &fakeStore{token: "tok-1"}
	gw := &fakeGateway{
		CurrentUserResp: &models.User{ID: "u1", Email: "a@b.com", Role: models.RoleBrand},
	}
	r := NewResolver(st, gw, nil)

	res := r.Resolve(context.Background())

	require.NotNil(t, res)
	require.Equal(t, "u1", res.User.ID)
	require.Equal(t, "tok-1", res.Token)
	require.Equal(t, "tok-1", gw.Token())
	require.Equal(t, "tok-1", st.stored(), "store must stay untouched")
}

func TestResolve_RejectedToken_ClearsStore(t *testing.T) {
	st := &fakeStore{token: "stale"}
	gw := &fakeGateway{
		CurrentUserErr: fmt.Errorf("%w: token expired", api.ErrUnauthorized),
	}
	r := NewResolver(st, gw, nil)

	res := r.Resolve(context.Background())

	require.Nil(t, res)
	require.Empty(t, st.stored())
	require.Empty(t, gw.Token())

	// A second resolution finds an empty store and skips the network.
	calls := gw.CurrentUserCalls
	require.Nil(t, r.Resolve(context.Background()))
	require.Equal(t, calls, gw.CurrentUserCalls)
}

func TestResolve_TransportFailure_FailsClosedKeepsStore(t *testing.T) {
	st := &fakeStore{token: "tok-maybe-good"}
	gw := &fakeGateway{
		CurrentUserErr: fmt.Errorf("%w: %v", api.ErrUnavailable, errTransport),
	}
	r := NewResolver(st, gw, nil)

	res := r.Resolve(context.Background())

	require.Nil(t, res, "unreachable backend must not grant access")
	require.Empty(t, gw.Token())
	require.Equal(t, "tok-maybe-good", st.stored())
}

func TestResolve_UnreadableStore_FailsClosed(t *testing.T) {
	st := &fakeStore{ReadErr: errTransport}
	gw := &fakeGateway{}
	r := NewResolver(st, gw, nil)

	require.Nil(t, r.Resolve(context.Background()))
	require.Zero(t, gw.CurrentUserCalls)
}
