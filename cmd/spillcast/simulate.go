package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidemark/spillcast/pkg/geo"
	"github.com/tidemark/spillcast/pkg/metocean"
	"github.com/tidemark/spillcast/pkg/oildb"
	"github.com/tidemark/spillcast/pkg/report"
	"github.com/tidemark/spillcast/pkg/spill"
	"github.com/tidemark/spillcast/pkg/units"
)

type simulateOpts struct {
	// spill
	volume  float64
	oilName string
	oilFile string

	// site
	lat, lon     float64
	locationType string
	sensitivity  float64

	// conditions
	timeHours      float64
	windKmh        float64
	waterTempC     float64
	waveHeightM    float64
	autoConditions bool

	// set when the user passed the flag explicitly, so climatology
	// estimates do not override a deliberate choice
	sensitivitySet bool
	locationSet    bool

	seed   uint64
	pretty bool

	// outputs
	save        bool
	jsonPath    string
	csvPath     string
	geojsonPath string
	mapPath     string
	chartsDir   string
}

func simulateCommand() *cobra.Command {
	var o simulateOpts

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run one spill simulation and report its impact",
		RunE: func(cmd *cobra.Command, args []string) error {
			o.sensitivitySet = cmd.Flags().Changed("sensitivity")
			o.locationSet = cmd.Flags().Changed("location-type")
			return runSimulate(o)
		},
	}

	fl := cmd.Flags()
	fl.Float64VarP(&o.volume, "volume", "v", 0, "spill volume in barrels")
	fl.Float64Var(&o.lat, "lat", 0, "origin latitude in degrees")
	fl.Float64Var(&o.lon, "lon", 0, "origin longitude in degrees")
	fl.StringVar(&o.oilName, "oil", "crude", "oil type from the reference set (see 'spillcast oils')")
	fl.StringVar(&o.oilFile, "oil-file", "", "JSON file of oil types merged over the builtin set")
	fl.Float64VarP(&o.timeHours, "time-hours", "t", spill.DefaultElapsedHours, "elapsed time since the spill in hours")
	fl.Float64Var(&o.windKmh, "wind", spill.DefaultWindSpeedKmh, "wind speed in km/h")
	fl.Float64Var(&o.waterTempC, "water-temp", spill.DefaultWaterTempC, "water temperature in °C")
	fl.Float64Var(&o.waveHeightM, "wave-height", spill.DefaultWaveHeightM, "significant wave height in m")
	fl.BoolVar(&o.autoConditions, "auto-conditions", false, "estimate wind, temperature and waves from latitude and season")
	fl.StringVar(&o.locationType, "location-type", "open_ocean", "location type for the impact tables")
	fl.Float64Var(&o.sensitivity, "sensitivity", 1.0, "environmental sensitivity multiplier")
	fl.Uint64Var(&o.seed, "seed", 0, "random seed (0 = derived from the clock)")
	fl.BoolVar(&o.pretty, "pretty", true, "format output as tables instead of plain lines")
	fl.BoolVar(&o.save, "save", false, "write the result document to a timestamped JSON file in the working directory")
	fl.StringVar(&o.jsonPath, "json", "", "write the full result document to a JSON file")
	fl.StringVar(&o.csvPath, "csv", "", "write the flattened result to a CSV file")
	fl.StringVar(&o.geojsonPath, "geojson", "", "write slick and origin features to a GeoJSON file")
	fl.StringVar(&o.mapPath, "map", "", "write an interactive Leaflet map to an HTML file")
	fl.StringVar(&o.chartsDir, "charts-dir", "", "write fraction and timeline charts into this directory")

	return cmd
}

func runSimulate(o simulateOpts) error {
	db, err := loadOils(o.oilFile)
	if err != nil {
		return err
	}
	if err := validateSimulate(o, db); err != nil {
		return err
	}
	oil, _ := db.Lookup(o.oilName)

	seed := o.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		slog.Debug("derived seed from clock", "seed", seed)
	}

	var provider metocean.Provider
	if o.autoConditions {
		provider = metocean.NewClimatology(nil, rand.NewPCG(seed, seed))
	} else {
		provider = metocean.Static{
			WindSpeedKmh: o.windKmh,
			WaterTempC:   o.waterTempC,
			WaveHeightM:  o.waveHeightM,
			Sensitivity:  o.sensitivity,
			LocationType: o.locationType,
		}
	}
	cond, err := provider.At(o.lat, o.lon)
	if err != nil {
		return err
	}
	if o.autoConditions {
		if o.sensitivitySet {
			cond.Sensitivity = o.sensitivity
		}
		if o.locationSet {
			cond.LocationType = o.locationType
		}
		slog.Info("estimated conditions",
			"wind_kmh", fmt.Sprintf("%.1f", cond.WindSpeedKmh),
			"water_temp_c", fmt.Sprintf("%.1f", cond.WaterTempC),
			"wave_m", fmt.Sprintf("%.2f", cond.WaveHeightM),
			"location_type", cond.LocationType)
	}

	sp := spill.NewSpill(units.Barrels(o.volume), oil)
	sp.ElapsedHours = o.timeHours
	sp.WindSpeedKmh = cond.WindSpeedKmh
	sp.WaterTempC = cond.WaterTempC
	sp.WaveHeightM = cond.WaveHeightM

	sim, err := spill.NewSimulator(sp, rand.NewPCG(seed, seed))
	if err != nil {
		return err
	}
	res := sim.Dispersal(o.lat, o.lon)

	est := spill.NewEstimator(sim, spill.WithSensitivity(cond.Sensitivity))
	sum := est.Summary()
	wild := est.WildlifeImpact(cond.LocationType)
	econ := est.EconomicImpact(cond.LocationType)

	fmt.Printf(_console,
		units.Barrels(o.volume), o.oilName,
		o.lat, o.lon,
		cond.WindSpeedKmh, cond.WaterTempC, cond.WaveHeightM,
		time.Now().Format("2006-01-02 15:04:05"))

	if o.pretty {
		printSummaryTable(sum, maxReachKm(res))
		printWildlifeTable(wild)
		printEconomicTable(econ)
	} else {
		printPlain(sum, wild, econ)
	}

	doc := &report.Document{
		GeneratedAt: time.Now(),
		Parameters: report.Parameters{
			VolumeBarrels: o.volume,
			OilType:       o.oilName,
			TimeHours:     sp.ElapsedHours,
			WindSpeedKmh:  sp.WindSpeedKmh,
			WaterTempC:    sp.WaterTempC,
			WaveHeightM:   sp.WaveHeightM,
			Latitude:      o.lat,
			Longitude:     o.lon,
			LocationType:  cond.LocationType,
			Seed:          seed,
		},
		Summary:   sum,
		Dispersal: res,
		Wildlife:  wild,
		Economic:  econ,
	}
	return writeOutputs(o, doc)
}

// validateSimulate checks the user-facing preconditions and reports every
// violation at once.
func validateSimulate(o simulateOpts, db *oildb.DB) error {
	var errs []error
	if o.volume <= 0 || math.IsNaN(o.volume) || math.IsInf(o.volume, 0) {
		errs = append(errs, fmt.Errorf("volume must be a positive number of barrels, got %v", o.volume))
	}
	if !geo.ValidCoordinates(o.lat, o.lon) {
		errs = append(errs, fmt.Errorf("coordinates (%v, %v) are out of range", o.lat, o.lon))
	}
	if _, err := db.Get(o.oilName); err != nil {
		errs = append(errs, fmt.Errorf("%w (try 'spillcast oils')", err))
	}
	if o.timeHours <= 0 {
		errs = append(errs, fmt.Errorf("time-hours must be > 0, got %v", o.timeHours))
	}
	if o.sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("sensitivity must be > 0, got %v", o.sensitivity))
	}
	return errors.Join(errs...)
}

func writeOutputs(o simulateOpts, doc *report.Document) error {
	if o.save && o.jsonPath == "" {
		o.jsonPath = report.DefaultPath("simulation", "json", nil)
	}

	outputs := []struct {
		kind, path string
		render     func(io.Writer) error
	}{
		{"json", o.jsonPath, func(w io.Writer) error { return report.WriteJSON(w, doc) }},
		{"csv", o.csvPath, func(w io.Writer) error { return report.WriteCSV(w, doc) }},
		{"geojson", o.geojsonPath, func(w io.Writer) error { return report.WriteGeoJSON(w, doc) }},
		{"map", o.mapPath, func(w io.Writer) error { return report.WriteMap(w, doc) }},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := writeArtifact(out.path, out.render); err != nil {
			return fmt.Errorf("write %s: %w", out.kind, err)
		}
		slog.Info("wrote artifact", "kind", out.kind, "path", out.path)
	}

	if o.chartsDir != "" {
		if err := os.MkdirAll(o.chartsDir, 0o755); err != nil {
			return err
		}
		if err := report.FractionChart(doc.Summary.OilFractions, filepath.Join(o.chartsDir, "fractions.png")); err != nil {
			return err
		}
		if err := report.TimelineChart(doc.Summary, filepath.Join(o.chartsDir, "timeline.png")); err != nil {
			return err
		}
		slog.Info("wrote charts", "dir", o.chartsDir)
	}
	return nil
}

// maxReachKm measures how far the slick boundary extends from the origin.
func maxReachKm(res spill.DispersalResult) float64 {
	if len(res.Boundary) == 0 {
		return 0
	}
	var reach float64
	for _, p := range res.Boundary[0] {
		d := geo.Distance(res.Origin.Y, res.Origin.X, p.Y, p.X)
		if d > reach {
			reach = d
		}
	}
	return reach
}

func printSummaryTable(sum spill.Summary, reachKm float64) {
	tw := newTable()
	fmt.Fprintln(tw, "METRIC\tVALUE")
	fmt.Fprintln(tw, "------\t-----")
	fmt.Fprintf(tw, "Volume\t%s (%s)\n", units.Barrels(sum.VolumeBarrels), units.CubicMeters(sum.VolumeM3))
	fmt.Fprintf(tw, "Oil type\t%s\n", sum.OilType)
	fmt.Fprintf(tw, "Affected area\t%s\n", units.SquareKm(sum.SurfaceAreaKm2))
	fmt.Fprintf(tw, "Max reach\t%.2f km\n", reachKm)
	fmt.Fprintf(tw, "Slick thickness\t%.3f mm\n", sum.SlickThicknessMm)
	fmt.Fprintf(tw, "Evaporated\t%.1f%%\n", 100*sum.OilFractions.Evaporated)
	fmt.Fprintf(tw, "Dissolved\t%.1f%%\n", 100*sum.OilFractions.Dissolved)
	fmt.Fprintf(tw, "On surface\t%.1f%%\n", 100*sum.OilFractions.Surface)
	fmt.Fprintf(tw, "CO2 emissions\t%.1f t\n", sum.CO2EmissionsTons)
	fmt.Fprintf(tw, "Cleanup time\t%.1f days\n", sum.CleanupTimeDays)
	fmt.Fprintf(tw, "Sensitivity\t%.1f\n", sum.EnvironmentalSensitivity)
	fmt.Fprintln(tw)
	tw.Flush()
}

func printWildlifeTable(w spill.WildlifeImpact) {
	tw := newTable()
	fmt.Fprintln(tw, "WILDLIFE\tVALUE")
	fmt.Fprintln(tw, "--------\t-----")
	fmt.Fprintf(tw, "Location\t%s\n", w.LocationType)
	fmt.Fprintf(tw, "Mortality rate\t%.1f%%\n", 100*w.MortalityRate)
	fmt.Fprintf(tw, "Birds affected\t%d\n", w.BirdsAffected)
	fmt.Fprintf(tw, "Marine mammals\t%d\n", w.MarineMammalsAffected)
	fmt.Fprintf(tw, "Fish affected\t%d\n", w.FishAffected)
	fmt.Fprintf(tw, "Long-term impact\t%.2f\n", w.LongTermEcosystemImpact)
	fmt.Fprintln(tw)
	tw.Flush()
}

func printEconomicTable(e spill.EconomicImpact) {
	tw := newTable()
	fmt.Fprintln(tw, "ECONOMIC\tUSD")
	fmt.Fprintln(tw, "--------\t---")
	fmt.Fprintf(tw, "Cleanup\t%d\n", e.CleanupCostUSD)
	fmt.Fprintf(tw, "Environmental damage\t%d\n", e.EnvironmentalDamageUSD)
	fmt.Fprintf(tw, "Tourism\t%d\n", e.TourismImpactUSD)
	fmt.Fprintf(tw, "Fishery\t%d\n", e.FisheryImpactUSD)
	fmt.Fprintf(tw, "Shipping\t%d\n", e.ShippingImpactUSD)
	fmt.Fprintf(tw, "Total\t%d\n", e.TotalUSD)
	fmt.Fprintf(tw, "Per barrel\t%d\n", e.CostPerBarrelUSD)
	fmt.Fprintln(tw)
	tw.Flush()
}

func printPlain(sum spill.Summary, w spill.WildlifeImpact, e spill.EconomicImpact) {
	fmt.Printf("area_km2=%.2f thickness_mm=%.3f evaporated=%.3f dissolved=%.3f surface=%.3f\n",
		sum.SurfaceAreaKm2, sum.SlickThicknessMm,
		sum.OilFractions.Evaporated, sum.OilFractions.Dissolved, sum.OilFractions.Surface)
	fmt.Printf("co2_tons=%.1f cleanup_days=%.1f mortality=%.3f total_usd=%d\n",
		sum.CO2EmissionsTons, sum.CleanupTimeDays, w.MortalityRate, e.TotalUSD)
}

const _console = `Spillcast - Oil Spill Dispersal & Impact Estimation

       Volume: %s
       Oil: %s
       Origin: %.4f, %.4f
       Wind: %.1f km/h
       Water: %.1f °C
       Waves: %.1f m

Impact report as of %s:

`
