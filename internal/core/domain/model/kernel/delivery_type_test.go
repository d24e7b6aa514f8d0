package kernel_test

import (
	"testing"

	"logistic/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryTypeFromInt(t *testing.T) {
	t.Run("maps_known_values", func(t *testing.T) {
		assert.Equal(t, kernel.WarehouseWarehouse, kernel.DeliveryTypeFromInt(1))
		assert.Equal(t, kernel.WarehouseDoor, kernel.DeliveryTypeFromInt(2))
		assert.Equal(t, kernel.DoorWarehouse, kernel.DeliveryTypeFromInt(3))
		assert.Equal(t, kernel.DoorDoor, kernel.DeliveryTypeFromInt(4))
	})

	t.Run("unknown_values_fall_back_to_warehouse_warehouse", func(t *testing.T) {
		assert.Equal(t, kernel.WarehouseWarehouse, kernel.DeliveryTypeFromInt(0))
		assert.Equal(t, kernel.WarehouseWarehouse, kernel.DeliveryTypeFromInt(5))
		assert.Equal(t, kernel.WarehouseWarehouse, kernel.DeliveryTypeFromInt(-7))
	})
}

func TestDeliveryType_VariantFlags(t *testing.T) {
	tests := []struct {
		deliveryType    kernel.DeliveryType
		pickupWarehouse bool
		deliveryWh      bool
	}{
		{kernel.WarehouseWarehouse, true, true},
		{kernel.WarehouseDoor, true, false},
		{kernel.DoorWarehouse, false, true},
		{kernel.DoorDoor, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.deliveryType.String(), func(t *testing.T) {
			assert.Equal(t, tt.pickupWarehouse, tt.deliveryType.PickupFromWarehouse())
			assert.Equal(t, tt.deliveryWh, tt.deliveryType.DeliveryToWarehouse())
		})
	}
}
