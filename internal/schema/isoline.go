package schema

import (
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/pkg/form"
)

// Isoline - схема запроса изохрон / изодистант (query string)
var Isoline = form.MustSchema("isoline",
	form.Float("lat", form.Required(), form.Lat()),
	form.Float("lon", form.Required(), form.Lon()),
	form.String("costing", form.Optional(), form.OneOf(domain.IsolineCostings...)).WithDefault("auto"),
	form.List("range", form.Required(), form.EachValue(form.Float("range", form.Required(), form.Min(0)))),
	form.List("color", form.Optional(), form.EachValue(
		form.String("color", form.Optional(), form.Match(`^[0-9a-fA-F]{6}$`, "Invalid value, must be a hex color without #.")),
	)),
	form.Bool("polygons", form.Optional()).WithDefault(false),
	form.Float("denoise", form.Optional(), form.Range(0, 1)).WithDefault(1.0),
)
