package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mansionmuse/backend/internal/constants"
	"github.com/mansionmuse/backend/internal/utils"
)

// PlanAccess is what the middleware needs to know about an owner's
// subscription: whether it is active and which modules it unlocks.
type PlanAccess struct {
	Active  bool
	Modules []string
}

// PlanAccessProvider resolves the current plan access for an owner.
type PlanAccessProvider interface {
	PlanAccessForOwner(ctx context.Context, ownerID string) (PlanAccess, error)
}

// PlanGate enforces per-module plan access on protected routes. Lookups are
// cached briefly so every request does not hit the database; call Invalidate
// after a plan change so the owner sees the new access immediately.
type PlanGate struct {
	provider PlanAccessProvider
	cache    *cache.Cache
}

func NewPlanGate(provider PlanAccessProvider) *PlanGate {
	ttl := time.Duration(constants.PlanAccessCacheTTLMinutes) * time.Minute
	return &PlanGate{
		provider: provider,
		cache:    cache.New(ttl, 2*ttl),
	}
}

// Invalidate drops the cached access for one owner.
func (g *PlanGate) Invalidate(ownerID string) {
	g.cache.Delete(ownerID)
}

// Require returns middleware that rejects the request unless the
// authenticated owner's plan is active and includes the given module.
// Admins bypass the gate.
func (g *PlanGate) Require(module string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := UserRoleFromContext(r.Context())
			if role == "admin" {
				next.ServeHTTP(w, r)
				return
			}

			ownerID, ok := UserIDFromContext(r.Context())
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing authentication", nil,
				)
				return
			}

			access, err := g.lookup(r.Context(), ownerID)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusInternalServerError, utils.ErrCodeInternal,
					"Could not verify plan access", nil, err,
				)
				return
			}

			if !access.Active {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodePlanInactive,
					"Your plan is inactive. Renew to continue.", nil,
				)
				return
			}
			if !containsModule(access.Modules, module) {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodePlanUpgradeRequired,
					"Your plan does not include this feature.",
					map[string]string{"module": module},
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *PlanGate) lookup(ctx context.Context, ownerID string) (PlanAccess, error) {
	if cached, found := g.cache.Get(ownerID); found {
		return cached.(PlanAccess), nil
	}
	access, err := g.provider.PlanAccessForOwner(ctx, ownerID)
	if err != nil {
		return PlanAccess{}, err
	}
	g.cache.SetDefault(ownerID, access)
	return access, nil
}

func containsModule(modules []string, module string) bool {
	for _, m := range modules {
		if m == module {
			return true
		}
	}
	return false
}
