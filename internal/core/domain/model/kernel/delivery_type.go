package kernel

// DeliveryType enumerates the warehouse/door delivery variants. The numeric
// values are part of the public API contract and of every carrier's tariff
// mapping, so they must not be reordered.
type DeliveryType int

const (
	// WarehouseWarehouse is terminal pickup and terminal delivery.
	WarehouseWarehouse DeliveryType = iota + 1
	// WarehouseDoor is terminal pickup and courier delivery to an address.
	WarehouseDoor
	// DoorWarehouse is address pickup and terminal delivery.
	DoorWarehouse
	// DoorDoor is address pickup and courier delivery to an address.
	DoorDoor
)

// DeliveryTypeFromInt maps the wire value onto a DeliveryType. Unrecognized
// values fall back to WarehouseWarehouse, matching the behavior every
// carrier mapping table defaults to.
func DeliveryTypeFromInt(v int) DeliveryType {
	t := DeliveryType(v)
	if !t.IsValid() {
		return WarehouseWarehouse
	}
	return t
}

// IsValid reports whether the value is one of the four known variants.
func (t DeliveryType) IsValid() bool {
	return t >= WarehouseWarehouse && t <= DoorDoor
}

// PickupFromWarehouse reports whether the shipment departs from a carrier
// terminal rather than an address.
func (t DeliveryType) PickupFromWarehouse() bool {
	return t == WarehouseWarehouse || t == WarehouseDoor
}

// DeliveryToWarehouse reports whether the shipment arrives at a carrier
// terminal rather than an address.
func (t DeliveryType) DeliveryToWarehouse() bool {
	return t == WarehouseWarehouse || t == DoorWarehouse
}

// String returns the conventional short name of the variant.
func (t DeliveryType) String() string {
	switch t {
	case WarehouseWarehouse:
		return "warehouse-warehouse"
	case WarehouseDoor:
		return "warehouse-door"
	case DoorWarehouse:
		return "door-warehouse"
	case DoorDoor:
		return "door-door"
	default:
		return "unknown"
	}
}
