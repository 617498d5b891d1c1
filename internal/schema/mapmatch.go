package schema

import (
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/pkg/form"
)

// ShapePoint - точка трека
var ShapePoint = form.MustSchema("shape_point",
	form.Float("lat", form.Required(), form.Lat()),
	form.Float("lon", form.Required(), form.Lon()),
	form.Int("time", form.Optional(), form.Min(0)),
)

// ShapePointWithType - точка трека для trace_route
var ShapePointWithType = form.MustCompose("shape_point_with_type", []*form.Schema{ShapePoint},
	form.String("type", form.Optional(), form.OneOf(domain.ShapePointTypes...)),
)

var mapMatchBase = form.MustSchema("map_matching",
	form.String("costing", form.Optional(), form.OneOf(domain.MapMatchCostings...)).WithDefault("auto"),
)

// TraceRoute - сопоставление трека с дорожной сетью с построением маршрута
var TraceRoute = form.MustCompose("trace_route", []*form.Schema{mapMatchBase},
	form.List("shape", form.Required(), form.Each(ShapePointWithType)),
	form.Int("search_radius", form.Optional(), form.Min(0)),
	form.Int("interpolation_distance", form.Optional(), form.Min(0)),
	form.Int("gps_accuracy", form.Optional(), form.Min(0)),
	form.Int("breakage_distance", form.Optional(), form.Min(0)),
	routingBase.MustField("language"),
	routingBase.MustField("directions_type"),
	routingBase.MustField("units"),
)

// TraceAttributes - атрибуты рёбер вдоль трека
var TraceAttributes = form.MustCompose("trace_attributes", []*form.Schema{mapMatchBase},
	form.List("shape", form.Required(), form.Each(ShapePoint)),
	form.StringList("filters", form.Optional(), form.SomeOf(domain.FilterAttributes...)),
	form.String("filter_action", form.Optional(), form.OneOf(domain.FilterActions...)).WithDefault("exclude"),
)
