package domain

// Таблицы перечислений. Инициализируются один раз, только для чтения.

var Units = []string{"kilometers", "miles"}

var DirectionsTypes = []string{"none", "maneuvers", "instructions"}

// Languages - языки инструкций (BCP-47)
var Languages = []string{
	"bg-BG", "ca-ES", "cs-CZ", "da-DK", "de-DE", "el-GR", "en-GB", "en-US-x-pirate", "en-US",
	"es-ES", "et-EE", "fi-FI", "fr-FR", "hi-IN", "hu-HU", "it-IT", "ja-JP", "nb-NO", "nl-NL",
	"pl-PL", "pt-BR", "pt-PT", "ro-RO", "ru-RU", "sk-SK", "sl-SI", "sv-SE", "tr-TR", "uk-UA",
}

// LocationTypes - тип точки маршрута
var LocationTypes = []string{"break", "through", "via", "break_through"}

// ShapePointTypes - тип точки трека (trace_route)
var ShapePointTypes = []string{"break", "via"}

var PreferredSides = []string{"same", "opposite", "either"}

var RoadClasses = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary", "unclassified", "residential", "service_other",
}

var BicycleTypes = []string{"Road", "Hybrid", "City", "Cross", "Mountain"}

// DateTimeTypes: 0 - текущее время, 1 - отправление, 2 - прибытие, 3 - инвариантное время
var DateTimeTypes = []int{0, 1, 2, 3}

var FilterActions = []string{"exclude", "include"}

// FilterAttributes - атрибуты trace_attributes, которые можно включить или исключить
var FilterAttributes = []string{
	"edge.names", "edge.length", "edge.speed", "edge.road_class", "edge.begin_heading",
	"edge.end_heading", "edge.begin_shape_index", "edge.end_shape_index", "edge.traversability",
	"edge.use", "edge.toll", "edge.unpaved", "edge.tunnel", "edge.bridge", "edge.roundabout",
	"edge.internal_intersection", "edge.drive_on_right", "edge.surface", "edge.sign.exit_number",
	"edge.sign.exit_branch", "edge.sign.exit_toward", "edge.sign.exit_name", "edge.travel_mode",
	"edge.vehicle_type", "edge.pedestrian_type", "edge.bicycle_type", "edge.transit_type",
	"edge.id", "edge.way_id", "edge.weighted_grade", "edge.max_upward_grade",
	"edge.max_downward_grade", "edge.mean_elevation", "edge.lane_count", "edge.cycle_lane",
	"edge.bicycle_network", "edge.sac_scale", "edge.shoulder", "edge.sidewalk", "edge.density",
	"edge.speed_limit", "edge.truck_speed", "edge.truck_route",
	"node.intersecting_edge.begin_heading", "node.intersecting_edge.from_edge_name_consistency",
	"node.intersecting_edge.to_edge_name_consistency", "node.intersecting_edge.driveability",
	"node.intersecting_edge.cyclability", "node.intersecting_edge.walkability",
	"node.intersecting_edge.use", "node.intersecting_edge.road_class",
	"node.intersecting_edge.lane_count", "node.elapsed_time", "node.admin_index", "node.type",
	"node.fork", "node.time_zone", "osm_changeset", "shape", "admin.country_code",
	"admin.country_text", "admin.state_code", "admin.state_text", "matched.point", "matched.type",
	"matched.edge_index", "matched.begin_route_discontinuity", "matched.end_route_discontinuity",
	"matched.distance_along_edge", "matched.distance_from_trace_point",
}
