package domain

// Costing - модель стоимости движка маршрутизации (режим передвижения)
type Costing string

const (
	CostingAuto         Costing = "auto"
	CostingAutoShorter  Costing = "auto_shorter"
	CostingTaxi         Costing = "taxi"
	CostingBus          Costing = "bus"
	CostingTruck        Costing = "truck"
	CostingBicycle      Costing = "bicycle"
	CostingBikeshare    Costing = "bikeshare"
	CostingMotorScooter Costing = "motor_scooter"
	CostingMotorcycle   Costing = "motorcycle"
	CostingPedestrian   Costing = "pedestrian"
	CostingTransit      Costing = "transit"
	CostingMultimodal   Costing = "multimodal"
)

// RoutingCostings - режимы, для которых доступен POST /route/{costing}
var RoutingCostings = []Costing{
	CostingAuto,
	CostingTaxi,
	CostingBus,
	CostingTruck,
	CostingBicycle,
	CostingBikeshare,
	CostingMotorScooter,
	CostingMotorcycle,
	CostingPedestrian,
	CostingTransit,
}

// IsRoutingCosting проверяет, что режим поддерживается маршрутизацией
func IsRoutingCosting(c Costing) bool {
	for _, rc := range RoutingCostings {
		if rc == c {
			return true
		}
	}
	return false
}

// Допустимые costing для изолиний и map matching
var (
	IsolineCostings  = []string{"auto", "bicycle", "pedestrian", "bikeshare", "bus", "multimodal"}
	MapMatchCostings = []string{"auto", "auto_shorter", "bicycle", "bus", "pedestrian"}
)
