package schema

import (
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/pkg/form"
)

// Side - параметры стороны улицы у точки маршрута
var Side = form.MustSchema("side",
	form.String("preferred_side", form.Optional(), form.OneOf(domain.PreferredSides...)),
	form.Float("display_lat", form.Optional(), form.Lat()),
	form.Float("display_lon", form.Optional(), form.Lon()),
	form.Int("node_snap_tolerance", form.Optional(), form.Min(0)),
	form.Int("street_side_tolerance", form.Optional(), form.Min(0)),
	form.Int("street_side_max_distance", form.Optional(), form.Min(0)),
)

// SearchFilter - фильтр рёбер-кандидатов при привязке точки
var SearchFilter = form.MustSchema("search_filter",
	form.Bool("exclude_tunnel", form.Optional()),
	form.Bool("exclude_bridge", form.Optional()),
	form.Bool("exclude_closures", form.Optional()),
	form.String("min_road_class", form.Optional(), form.OneOf(domain.RoadClasses...)),
	form.String("max_road_class", form.Optional(), form.OneOf(domain.RoadClasses...)),
)

// Location - точка маршрута
var Location = form.MustSchema("location",
	form.Float("lat", form.Required(), form.Lat()),
	form.Float("lon", form.Required(), form.Lon()),
	form.String("type", form.Optional(), form.OneOf(domain.LocationTypes...)),
	form.Int("heading", form.Optional(), form.Range(0, 360)),
	form.Int("heading_tolerance", form.Optional(), form.Min(0)),
	form.Int("minimum_reachability", form.Optional(), form.Min(0)),
	form.Int("radius", form.Optional(), form.Min(0)),
	form.Bool("rank_candidates", form.Optional()),
	form.Object("side", form.Optional(), form.ObjectOf(Side)),
	form.Object("search_filter", form.Optional(), form.ObjectOf(SearchFilter)),
	form.String("name", form.Optional()),
	form.String("city", form.Optional()),
	form.String("state", form.Optional()),
	form.String("postal_code", form.Optional()),
	form.String("country", form.Optional()),
	form.String("phone", form.Optional()),
	form.String("url", form.Optional()),
)

// DateTime - время отправления / прибытия
var DateTime = form.MustSchema("date_time",
	form.Int("type", form.Required(), form.OneOf(domain.DateTimeTypes...)),
	form.String("value", form.Optional()),
)
