package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidemark/spillcast/pkg/geo"
	"github.com/tidemark/spillcast/pkg/report"
	"github.com/tidemark/spillcast/pkg/spill"
	"github.com/tidemark/spillcast/pkg/units"
)

type timelineOpts struct {
	volume      float64
	oilName     string
	oilFile     string
	lat, lon    float64
	windKmh     float64
	waterTempC  float64
	waveHeightM float64
	sensitivity float64
	location    string

	hours string
	step  float64
	seed  uint64

	csvPath   string
	framesDir string
}

func timelineCommand() *cobra.Command {
	var o timelineOpts

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Sweep one spill across several elapsed times",
		Long: `Timeline runs the same spill at a series of elapsed times and tabulates
how the slick evolves. Each time point is an independent run with the same
seed, so the rows differ only in elapsed time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(o)
		},
	}

	fl := cmd.Flags()
	fl.Float64VarP(&o.volume, "volume", "v", 0, "spill volume in barrels")
	fl.Float64Var(&o.lat, "lat", 0, "origin latitude in degrees")
	fl.Float64Var(&o.lon, "lon", 0, "origin longitude in degrees")
	fl.StringVar(&o.oilName, "oil", "crude", "oil type from the reference set")
	fl.StringVar(&o.oilFile, "oil-file", "", "JSON file of oil types merged over the builtin set")
	fl.Float64Var(&o.windKmh, "wind", spill.DefaultWindSpeedKmh, "wind speed in km/h")
	fl.Float64Var(&o.waterTempC, "water-temp", spill.DefaultWaterTempC, "water temperature in °C")
	fl.Float64Var(&o.waveHeightM, "wave-height", spill.DefaultWaveHeightM, "significant wave height in m")
	fl.StringVar(&o.location, "location-type", "open_ocean", "location type for the impact tables")
	fl.Float64Var(&o.sensitivity, "sensitivity", 1.0, "environmental sensitivity multiplier")
	fl.StringVar(&o.hours, "hours", "6,12,24,48", "elapsed times: a comma list like 6,12,24 or a range like 6..72")
	fl.Float64Var(&o.step, "step", 6, "hours between points when --hours is a range")
	fl.Uint64Var(&o.seed, "seed", 1, "random seed shared by every time point")
	fl.StringVar(&o.csvPath, "csv", "", "write the per-step table to a CSV file")
	fl.StringVar(&o.framesDir, "frames-dir", "", "write one Leaflet map per step (frame_000.html ...)")

	return cmd
}

func runTimeline(o timelineOpts) error {
	db, err := loadOils(o.oilFile)
	if err != nil {
		return err
	}
	oil, err := db.Get(o.oilName)
	if err != nil {
		return err
	}
	if o.volume <= 0 {
		return fmt.Errorf("volume must be a positive number of barrels, got %v", o.volume)
	}
	if !geo.ValidCoordinates(o.lat, o.lon) {
		return fmt.Errorf("coordinates (%v, %v) are out of range", o.lat, o.lon)
	}
	hours, err := parseHours(o.hours, o.step)
	if err != nil {
		return err
	}

	tw := newTable()
	fmt.Fprintln(tw, "HOURS\tAREA (km²)\tTHICKNESS (mm)\tEVAP %\tDISS %\tSURFACE %\tCO2 (t)\tCLEANUP (d)")
	fmt.Fprintln(tw, "-----\t----------\t--------------\t------\t------\t---------\t-------\t-----------")

	var rows [][]string
	for i, h := range hours {
		sp := spill.NewSpill(units.Barrels(o.volume), oil)
		sp.ElapsedHours = h
		sp.WindSpeedKmh = o.windKmh
		sp.WaterTempC = o.waterTempC
		sp.WaveHeightM = o.waveHeightM

		sim, err := spill.NewSimulator(sp, rand.NewPCG(o.seed, o.seed))
		if err != nil {
			return err
		}
		res := sim.Dispersal(o.lat, o.lon)
		est := spill.NewEstimator(sim, spill.WithSensitivity(o.sensitivity))
		sum := est.Summary()

		fmt.Fprintf(tw, "%g\t%.2f\t%.3f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			h, sum.SurfaceAreaKm2, sum.SlickThicknessMm,
			100*sum.OilFractions.Evaporated, 100*sum.OilFractions.Dissolved,
			100*sum.OilFractions.Surface, sum.CO2EmissionsTons, sum.CleanupTimeDays)

		rows = append(rows, []string{
			strconv.FormatFloat(h, 'g', -1, 64),
			strconv.FormatFloat(sum.SurfaceAreaKm2, 'f', 4, 64),
			strconv.FormatFloat(sum.SlickThicknessMm, 'f', 6, 64),
			strconv.FormatFloat(sum.OilFractions.Evaporated, 'f', 6, 64),
			strconv.FormatFloat(sum.OilFractions.Dissolved, 'f', 6, 64),
			strconv.FormatFloat(sum.OilFractions.Surface, 'f', 6, 64),
			strconv.FormatFloat(sum.CO2EmissionsTons, 'f', 2, 64),
			strconv.FormatFloat(sum.CleanupTimeDays, 'f', 2, 64),
		})

		if o.framesDir != "" {
			doc := &report.Document{
				GeneratedAt: time.Now(),
				Parameters: report.Parameters{
					VolumeBarrels: o.volume,
					OilType:       o.oilName,
					TimeHours:     h,
					WindSpeedKmh:  o.windKmh,
					WaterTempC:    o.waterTempC,
					WaveHeightM:   o.waveHeightM,
					Latitude:      o.lat,
					Longitude:     o.lon,
					LocationType:  o.location,
					Seed:          o.seed,
				},
				Summary:   sum,
				Dispersal: res,
				Wildlife:  est.WildlifeImpact(o.location),
				Economic:  est.EconomicImpact(o.location),
			}
			frame := filepath.Join(o.framesDir, fmt.Sprintf("frame_%03d.html", i))
			if err := writeArtifact(frame, func(w io.Writer) error { return report.WriteMap(w, doc) }); err != nil {
				return fmt.Errorf("write frame %d: %w", i, err)
			}
		}
	}
	tw.Flush()

	if o.framesDir != "" {
		slog.Info("wrote map frames", "dir", o.framesDir, "count", len(hours))
	}
	if o.csvPath != "" {
		if err := writeTimelineCSV(o.csvPath, rows); err != nil {
			return err
		}
		slog.Info("wrote artifact", "kind", "csv", "path", o.csvPath)
	}
	return nil
}

func writeTimelineCSV(path string, rows [][]string) error {
	return writeArtifact(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{
			"hours", "area_km2", "thickness_mm",
			"evaporated", "dissolved", "surface",
			"co2_tons", "cleanup_days",
		}); err != nil {
			return err
		}
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	})
}

// parseHours expands an elapsed-hours spec: either a comma list like
// "6,12,24" or an inclusive range like "6..72" walked in step increments.
func parseHours(spec string, step float64) ([]float64, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("hours spec is empty")
	}

	if lo, hi, ok := strings.Cut(spec, ".."); ok {
		from, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		if err != nil {
			return nil, fmt.Errorf("bad hours range start %q", lo)
		}
		to, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err != nil {
			return nil, fmt.Errorf("bad hours range end %q", hi)
		}
		if from <= 0 || to < from {
			return nil, fmt.Errorf("hours range must rise from a positive start, got %v..%v", from, to)
		}
		if step <= 0 {
			return nil, fmt.Errorf("step must be > 0, got %v", step)
		}
		var hours []float64
		for h := from; h <= to+1e-9; h += step {
			hours = append(hours, h)
		}
		return hours, nil
	}

	var hours []float64
	for _, part := range strings.Split(spec, ",") {
		h, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad hours value %q", part)
		}
		if h <= 0 {
			return nil, fmt.Errorf("hours must be > 0, got %v", h)
		}
		hours = append(hours, h)
	}
	return hours, nil
}
