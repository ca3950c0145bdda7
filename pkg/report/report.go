// Package report renders simulation output for people and downstream
// tools: indented JSON, flattened CSV, GeoJSON features, WKT geometry,
// a self-contained Leaflet map, and chart images.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/ctessum/geom/encoding/geojson"
	"github.com/jonboulle/clockwork"

	"github.com/tidemark/spillcast/pkg/spill"
)

// Parameters echoes the simulation inputs so a result file is
// self-describing and reproducible.
type Parameters struct {
	VolumeBarrels float64 `json:"volume_barrels"`
	OilType       string  `json:"oil_type"`
	TimeHours     float64 `json:"time_hours"`
	WindSpeedKmh  float64 `json:"wind_speed_kmh"`
	WaterTempC    float64 `json:"water_temp_c"`
	WaveHeightM   float64 `json:"wave_height_m"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	LocationType  string  `json:"location_type"`
	Seed          uint64  `json:"seed"`
}

// Document is a complete simulation result ready for serialization.
type Document struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Parameters  Parameters            `json:"parameters"`
	Summary     spill.Summary         `json:"impact_summary"`
	Dispersal   spill.DispersalResult `json:"dispersal"`
	Wildlife    spill.WildlifeImpact  `json:"wildlife_impact"`
	Economic    spill.EconomicImpact  `json:"economic_impact"`
}

// jsonView adds the geometry renditions the struct tags leave out.
type jsonView struct {
	*Document
	BoundaryWKT     string          `json:"boundary_wkt,omitempty"`
	BoundaryGeoJSON json.RawMessage `json:"boundary_geojson,omitempty"`
}

func (d *Document) view(withGeoJSON bool) (jsonView, error) {
	v := jsonView{Document: d}
	if len(d.Dispersal.Boundary) == 0 {
		return v, nil
	}
	v.BoundaryWKT = WKT(d.Dispersal.Boundary)
	if withGeoJSON {
		raw, err := geojson.Encode(d.Dispersal.Boundary)
		if err != nil {
			return v, fmt.Errorf("report: encode boundary: %w", err)
		}
		v.BoundaryGeoJSON = raw
	}
	return v, nil
}

// WriteJSON writes the document as indented JSON. The slick boundary is
// included twice, as a WKT string and as embedded GeoJSON geometry.
func WriteJSON(w io.Writer, doc *Document) error {
	v, err := doc.view(true)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCSV writes the document as flattened Parameter,Value rows: nested
// objects join their key path with underscores, rows sorted by parameter
// name. Geometry appears as a single WKT row.
func WriteCSV(w io.Writer, doc *Document) error {
	v, err := doc.view(false)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	flat := map[string]string{}
	flatten("", tree, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Parameter", "Value"}); err != nil {
		return err
	}
	for _, k := range keys {
		if err := cw.Write([]string{k, flat[k]}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func flatten(prefix string, v any, out map[string]string) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			key := k
			if prefix != "" {
				key = prefix + "_" + k
			}
			flatten(key, child, out)
		}
	case nil:
		out[prefix] = ""
	case json.Number:
		out[prefix] = t.String()
	default:
		out[prefix] = fmt.Sprintf("%v", t)
	}
}

// DefaultPath builds the conventional timestamped output file name,
// e.g. simulation_20260825_143000.json.
func DefaultPath(prefix, ext string, clock clockwork.Clock) string {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return fmt.Sprintf("%s_%s.%s", prefix, clock.Now().Format("20060102_150405"), ext)
}
