package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
)

// WKT renders a polygon as a well-known-text string in x y (longitude
// latitude) order, one paren group per ring.
func WKT(p geom.Polygon) string {
	if len(p) == 0 {
		return "POLYGON EMPTY"
	}
	var b strings.Builder
	b.WriteString("POLYGON (")
	for i, ring := range p {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, pt := range ring {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(pt.X, 'f', -1, 64))
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(pt.Y, 'f', -1, 64))
		}
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

type feature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties map[string]any    `json:"properties"`
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// WriteGeoJSON writes a FeatureCollection with the slick polygon and the
// spill origin point. The polygon feature carries the headline impact
// metrics as properties so GIS tools can style and label it directly.
func WriteGeoJSON(w io.Writer, doc *Document) error {
	polyGeom, err := geojson.ToGeoJSON(doc.Dispersal.Boundary)
	if err != nil {
		return fmt.Errorf("report: encode boundary: %w", err)
	}
	originGeom, err := geojson.ToGeoJSON(doc.Dispersal.Origin)
	if err != nil {
		return fmt.Errorf("report: encode origin: %w", err)
	}

	fc := featureCollection{
		Type: "FeatureCollection",
		Features: []feature{
			{
				Type:     "Feature",
				Geometry: polyGeom,
				Properties: map[string]any{
					"kind":               "slick",
					"oil_type":           doc.Summary.OilType,
					"area_km2":           doc.Dispersal.AreaKm2,
					"thickness_mm":       doc.Dispersal.ThicknessMm,
					"evaporated":         doc.Dispersal.EvaporatedFraction,
					"dissolved":          doc.Dispersal.DissolvedFraction,
					"co2_emissions_tons": doc.Summary.CO2EmissionsTons,
					"cleanup_time_days":  doc.Summary.CleanupTimeDays,
					"total_economic_usd": doc.Economic.TotalUSD,
					"mortality_rate":     doc.Wildlife.MortalityRate,
				},
			},
			{
				Type:     "Feature",
				Geometry: originGeom,
				Properties: map[string]any{
					"kind":           "origin",
					"volume_barrels": doc.Parameters.VolumeBarrels,
					"oil_type":       doc.Parameters.OilType,
					"location_type":  doc.Parameters.LocationType,
				},
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
