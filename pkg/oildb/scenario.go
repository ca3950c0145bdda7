package oildb

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tidemark/spillcast/pkg/spill"
	"github.com/tidemark/spillcast/pkg/units"
)

// Scenario is one row of a spill scenario CSV: a named release with its
// location and, optionally, the sea state it met. Zero-valued condition
// fields mean "not given" and resolve to the model defaults in Spill.
type Scenario struct {
	Name          string
	VolumeBarrels float64
	Lat           float64
	Lon           float64
	OilType       string
	TimeHours     float64
	WindKmh       float64
	WaterTempC    float64
	WaveHeightM   float64
	LocationType  string
}

// Spill assembles the simulator input for this scenario, applying the
// default conditions wherever the CSV left a field empty.
func (sc Scenario) Spill(oil spill.OilProperties) spill.Spill {
	s := spill.NewSpill(units.Barrels(sc.VolumeBarrels), oil)
	if sc.TimeHours > 0 {
		s.ElapsedHours = sc.TimeHours
	}
	if sc.WindKmh > 0 {
		s.WindSpeedKmh = sc.WindKmh
	}
	if sc.WaterTempC != 0 {
		s.WaterTempC = sc.WaterTempC
	}
	if sc.WaveHeightM > 0 {
		s.WaveHeightM = sc.WaveHeightM
	}
	return s
}

// Columns the scenario CSV must carry; the remaining columns are optional.
var requiredColumns = []string{"name", "volume_barrels", "lat", "lon", "oil_type"}

// LoadScenarios reads a scenario CSV from path.
func LoadScenarios(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("oildb: %w", err)
	}
	defer f.Close()
	scs, err := ReadScenarios(f)
	if err != nil {
		return nil, fmt.Errorf("oildb: %s: %w", path, err)
	}
	return scs, nil
}

// ReadScenarios parses scenario rows from CSV data. The first row is a
// header naming the columns (order-insensitive); name, volume_barrels,
// lat, lon, and oil_type are required, conditions and location_type are
// optional. Row errors carry 1-based line numbers.
func ReadScenarios(r io.Reader) ([]Scenario, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("scenario CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("scenario CSV is missing column %q", name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var scenarios []Scenario
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		sc := Scenario{
			Name:         field(record, "name"),
			OilType:      field(record, "oil_type"),
			LocationType: field(record, "location_type"),
		}

		numeric := []struct {
			column   string
			dst      *float64
			required bool
		}{
			{"volume_barrels", &sc.VolumeBarrels, true},
			{"lat", &sc.Lat, true},
			{"lon", &sc.Lon, true},
			{"time_hours", &sc.TimeHours, false},
			{"wind_kmh", &sc.WindKmh, false},
			{"water_temp_c", &sc.WaterTempC, false},
			{"wave_m", &sc.WaveHeightM, false},
		}
		for _, n := range numeric {
			raw := field(record, n.column)
			if raw == "" {
				if n.required {
					return nil, fmt.Errorf("line %d: missing %s", line, n.column)
				}
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad %s %q", line, n.column, raw)
			}
			*n.dst = v
		}

		if sc.Name == "" {
			return nil, fmt.Errorf("line %d: missing name", line)
		}
		if sc.OilType == "" {
			return nil, fmt.Errorf("line %d: missing oil_type", line)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}
