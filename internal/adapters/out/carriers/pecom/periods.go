package pecom

import (
	"regexp"
	"strconv"

	"logistic/internal/core/domain/model/kernel"
)

// fallbackPeriodDays is used when the transit block cannot be parsed out of
// the calculator's aperiods text. The public calculator shows 5 days for
// most inter-city routes, so a flat 5..5 is the least surprising stand-in.
const fallbackPeriodDays = 5

// periodLabels are the route kinds the calculator annotates its transit
// lines with inside the aperiods HTML fragment.
var periodLabels = map[kernel.DeliveryType]string{
	kernel.WarehouseWarehouse: "склад - склад",
	kernel.WarehouseDoor:      "склад - дверь",
	kernel.DoorWarehouse:      "дверь - склад",
	kernel.DoorDoor:           "дверь - дверь",
}

var periodPatterns = func() map[kernel.DeliveryType]*regexp.Regexp {
	patterns := make(map[kernel.DeliveryType]*regexp.Regexp, len(periodLabels))
	for deliveryType, label := range periodLabels {
		patterns[deliveryType] = regexp.MustCompile(
			`Количество суток в пути</b>: (\d+) - (\d+).*\(` + regexp.QuoteMeta(label) + `\)`)
	}
	return patterns
}()

// extractPeriods pulls the min and max transit days for the route kind out
// of the aperiods fragment. An unmatched fragment yields the fixed fallback
// for both bounds.
func extractPeriods(aperiods string, deliveryType kernel.DeliveryType) (int, int) {
	pattern, ok := periodPatterns[deliveryType]
	if !ok {
		pattern = periodPatterns[kernel.WarehouseWarehouse]
	}

	match := pattern.FindStringSubmatch(aperiods)
	if match == nil {
		return fallbackPeriodDays, fallbackPeriodDays
	}

	periodMin, errMin := strconv.Atoi(match[1])
	periodMax, errMax := strconv.Atoi(match[2])
	if errMin != nil || errMax != nil {
		return fallbackPeriodDays, fallbackPeriodDays
	}
	return periodMin, periodMax
}
