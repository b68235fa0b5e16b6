package postgresosm

const (
	SRID4326 = 4326
	SRID3857 = 3857
)

const planetLineTable = "planet_osm_line"

// drivableHighways - значения тега highway, на которые можно подать машину.
// Пешеходные, велосипедные и служебные тропы не подходят для точки посадки.
var drivableHighways = []string{
	"motorway", "motorway_link",
	"trunk", "trunk_link",
	"primary", "primary_link",
	"secondary", "secondary_link",
	"tertiary", "tertiary_link",
	"unclassified", "residential",
	"living_street", "service", "road",
}
