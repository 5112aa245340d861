package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ID prefixes follow the convention used by the dashboard's data files,
// so seeded and user-created records share one namespace.
const (
	MaterialIDPrefix  = "mat"
	SupplierIDPrefix  = "sup"
	WarehouseIDPrefix = "wh"
	PricingIDPrefix   = "smp"
	RouteIDPrefix     = "route"
)

// NewID returns an opaque "<prefix>-<uuid>" identifier.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}
