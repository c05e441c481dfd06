package porthole

import _ "embed"

// DemoStreets is a small synthetic street grid with "origin" and
// "destination" places, used when no network file is given.
//
//go:embed data/demo.geojson
var DemoStreets []byte
