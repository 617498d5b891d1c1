package schema

import (
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/pkg/form"
)

// DirectionFields - поля маршрута, которые не относятся к costing options
var DirectionFields = []string{"units", "language", "directions_type", "date_time"}

// routingBase - общие поля всех запросов маршрутизации
var routingBase = form.MustSchema("routing",
	form.List("locations", form.Required(), form.Each(Location)),
	form.String("units", form.Optional(), form.OneOf(domain.Units...)).WithDefault("kilometers"),
	form.String("language", form.Optional(), form.OneOf(domain.Languages...)).WithDefault("en-US"),
	form.String("directions_type", form.Optional(), form.OneOf(domain.DirectionsTypes...)).WithDefault("instructions"),
	form.Object("date_time", form.Optional(), form.ObjectOf(DateTime)),
)

func nonNegativeInt(name string, def int) form.Field {
	return form.Int(name, form.Optional(), form.Min(0)).WithDefault(def)
}

func factor(name string, def float64) form.Field {
	return form.Float(name, form.Optional(), form.Range(0, 1)).WithDefault(def)
}

func flag(name string, def bool) form.Field {
	return form.Bool(name, form.Optional()).WithDefault(def)
}

// Слои costing options

var generic = form.MustSchema("generic",
	nonNegativeInt("maneuver_penalty", 5),
	nonNegativeInt("gate_cost", 30),
	nonNegativeInt("gate_penalty", 300),
	nonNegativeInt("country_crossing_cost", 600),
	nonNegativeInt("country_crossing_penalty", 0),
	nonNegativeInt("service_penalty", 15),
)

var automobile = form.MustCompose("automobile", []*form.Schema{generic},
	factor("use_ferry", 0.5),
	factor("use_tolls", 0.5),
	factor("use_living_streets", 0.1),
	factor("use_tracks", 0.0),
	nonNegativeInt("private_access_penalty", 450),
	nonNegativeInt("toll_booth_cost", 15),
	nonNegativeInt("toll_booth_penalty", 0),
	nonNegativeInt("ferry_cost", 300),
	nonNegativeInt("service_factor", 1),
	flag("shortest", false),
	form.Int("top_speed", form.Optional(), form.Range(10, 252)).WithDefault(140),
	flag("ignore_closures", false),
	form.Float("closure_factor", form.Optional(), form.Range(1, 10)).WithDefault(9.0),
)

var vehicle = form.MustCompose("vehicle", []*form.Schema{automobile},
	form.Float("height", form.Optional(), form.Min(0)),
	form.Float("width", form.Optional(), form.Min(0)),
	flag("exclude_unpaved", false),
	flag("exclude_cash_only_tolls", false),
	flag("include_hov2", false),
	flag("include_hov3", false),
	flag("include_hov", false),
)

var truck = form.MustCompose("truck", []*form.Schema{vehicle},
	form.Float("length", form.Optional(), form.Min(0)),
	form.Float("weight", form.Optional(), form.Min(0)).WithDefault(2.5),
	form.Float("axle_load", form.Optional(), form.Min(0)),
	flag("hazmat", false),
	automobile.MustField("service_penalty").WithDefault(0),
	automobile.MustField("use_living_streets").WithDefault(0.0),
)

var bicycle = form.MustCompose("bicycle", []*form.Schema{generic},
	form.String("bicycle_type", form.Optional(), form.OneOf(domain.BicycleTypes...)).WithDefault("Hybrid"),
	form.Int("cycling_speed", form.Optional(), form.Min(0)),
	factor("use_roads", 0.5),
	factor("use_hills", 0.5),
	factor("use_ferry", 0.5),
	factor("use_living_streets", 0.5),
	factor("avoid_bad_surfaces", 0.25),
	flag("shortest", false),
)

var bikeshare = form.MustCompose("bikeshare", []*form.Schema{bicycle},
	nonNegativeInt("bss_return_cost", 120),
	nonNegativeInt("bss_return_penalty", 0),
)

var motorScooter = form.MustCompose("motor_scooter", []*form.Schema{automobile},
	factor("use_primary", 0.5),
	factor("use_hills", 0.5),
	form.Int("top_speed", form.Optional(), form.Range(20, 120)).WithDefault(45),
)

var motorcycle = form.MustCompose("motorcycle", []*form.Schema{automobile},
	factor("use_highways", 1.0),
	factor("use_trails", 1.0),
)

var pedestrian = form.MustSchema("pedestrian",
	form.Float("walking_speed", form.Optional(), form.Range(0.5, 25)).WithDefault(5.1),
	form.Float("walkway_factor", form.Optional(), form.Min(0)).WithDefault(1.0),
	form.Float("sidewalk_factor", form.Optional(), form.Min(0)).WithDefault(1.0),
	form.Float("alley_factor", form.Optional(), form.Min(0)).WithDefault(2.0),
	form.Float("driveway_factor", form.Optional(), form.Min(0)).WithDefault(5.0),
	nonNegativeInt("step_penalty", 0),
	factor("use_ferry", 0.5),
	factor("use_living_streets", 0.6),
	factor("use_tracks", 0.5),
	factor("use_hills", 0.5),
	nonNegativeInt("service_penalty", 0),
	nonNegativeInt("service_factor", 1),
	form.Int("max_hiking_difficulty", form.Optional(), form.Range(1, 6)).WithDefault(1),
	flag("shortest", false),
)

var transit = form.MustSchema("transit",
	factor("use_bus", 0.3),
	factor("use_rail", 0.6),
	factor("use_transfers", 0.3),
	nonNegativeInt("transit_start_end_max_distance", 2145),
	nonNegativeInt("transit_transfer_max_distance", 800),
)

// CostingOptions - набор costing options по режиму (без полей маршрута)
var CostingOptions = map[domain.Costing]*form.Schema{
	domain.CostingAuto:         vehicle,
	domain.CostingTaxi:         vehicle,
	domain.CostingBus:          vehicle,
	domain.CostingTruck:        truck,
	domain.CostingBicycle:      bicycle,
	domain.CostingBikeshare:    bikeshare,
	domain.CostingMotorScooter: motorScooter,
	domain.CostingMotorcycle:   motorcycle,
	domain.CostingPedestrian:   pedestrian,
	domain.CostingTransit:      transit,
}

// routingSchemas - полные схемы запроса маршрута по режимам
var routingSchemas = func() map[domain.Costing]*form.Schema {
	out := make(map[domain.Costing]*form.Schema, len(CostingOptions))
	for mode, options := range CostingOptions {
		out[mode] = form.MustCompose("route_"+string(mode), []*form.Schema{routingBase, options})
	}
	return out
}()
