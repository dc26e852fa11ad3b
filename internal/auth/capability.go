package auth

import (
	"github.com/fekuna/omnipos-order-service/internal/apperr"
)

// Operation names an authorization-checked entry point.
type Operation string

const (
	OpOrderUpdateStatus Operation = "order.update_status"
	OpOrderCancel       Operation = "order.cancel"
	OpOrderReturn       Operation = "order.return"
	OpInventoryAdjust   Operation = "inventory.adjust"
	OpCatalogWrite      Operation = "catalog.write"
)

type requirement int

const (
	adminOnly requirement = iota
	ownerOnly
	ownerOrAdmin
)

// capabilities is the single place role/ownership rules live; usecases
// consult it once per entry point instead of comparing roles inline.
var capabilities = map[Operation]requirement{
	OpOrderUpdateStatus: adminOnly,
	OpOrderCancel:       ownerOrAdmin,
	OpOrderReturn:       ownerOnly,
	OpInventoryAdjust:   adminOnly,
	OpCatalogWrite:      adminOnly,
}

// Allow checks whether actor may perform op against a resource owned by
// ownerID. Unknown operations are denied.
func Allow(op Operation, actor Actor, ownerID string) error {
	req, ok := capabilities[op]
	if !ok {
		return apperr.ErrUnauthorized
	}
	switch req {
	case adminOnly:
		if actor.IsAdmin() {
			return nil
		}
	case ownerOnly:
		if actor.ID == ownerID {
			return nil
		}
	case ownerOrAdmin:
		if actor.IsAdmin() || actor.ID == ownerID {
			return nil
		}
	}
	return apperr.ErrUnauthorized
}
