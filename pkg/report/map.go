package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/tidemark/spillcast/pkg/units"
)

type mapView struct {
	Lat, Lon  float64
	Volume    string
	OilType   string
	Date      string
	AreaKm2   string
	Boundary  template.JS
	HasSlick  bool
	Sensitive string
}

// WriteMap renders a self-contained Leaflet HTML map: light basemap, a
// red origin marker with the spill facts, and the slick polygon in the
// conventional dark oil tint, fitted into view.
func WriteMap(w io.Writer, doc *Document) error {
	v := mapView{
		Lat:       doc.Parameters.Latitude,
		Lon:       doc.Parameters.Longitude,
		Volume:    units.Barrels(doc.Parameters.VolumeBarrels).String(),
		OilType:   doc.Summary.OilType,
		Date:      doc.GeneratedAt.Format("2006-01-02"),
		AreaKm2:   fmt.Sprintf("%.2f", doc.Dispersal.AreaKm2),
		Sensitive: fmt.Sprintf("%.1f", doc.Summary.EnvironmentalSensitivity),
	}

	if len(doc.Dispersal.Boundary) > 0 {
		// Leaflet wants [lat, lon] pairs
		ring := doc.Dispersal.Boundary[0]
		coords := make([][2]float64, len(ring))
		for i, pt := range ring {
			coords[i] = [2]float64{pt.Y, pt.X}
		}
		raw, err := json.Marshal(coords)
		if err != nil {
			return fmt.Errorf("report: %w", err)
		}
		v.Boundary = template.JS(raw)
		v.HasSlick = true
	}

	var buf bytes.Buffer
	if err := mapTpl.Execute(&buf, v); err != nil {
		return fmt.Errorf("report: render map: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var mapTpl = template.Must(template.New("map").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Oil Spill Impact Estimation</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html,body,#map{height:100%;margin:0}
.infobox{position:fixed;top:10px;left:50px;width:300px;background:#fff;
border:2px solid grey;border-radius:5px;z-index:9999;padding:10px;
font-size:14px;font-family:Arial,Helvetica,sans-serif}
.infobox b{font-size:16px}
</style>

<div id="map"></div>
<div class="infobox">
<b>Oil Spill Impact Estimation</b><br>
Volume: {{.Volume}}<br>
Affected Area: {{.AreaKm2}} km&sup2;<br>
Oil Type: {{.OilType}}<br>
Sensitivity: {{.Sensitive}}
</div>

<script>
var map = L.map('map').setView([{{.Lat}}, {{.Lon}}], 8);
L.tileLayer('https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png', {
  maxZoom: 19,
  attribution: '&copy; OpenStreetMap contributors &copy; CARTO'
}).addTo(map);

L.marker([{{.Lat}}, {{.Lon}}]).addTo(map).bindPopup(
  '<strong>Oil Spill Origin</strong><br>' +
  'Volume: {{.Volume}}<br>' +
  'Oil Type: {{.OilType}}<br>' +
  'Date: {{.Date}}<br>' +
  'Coordinates: {{printf "%.4f" .Lat}}, {{printf "%.4f" .Lon}}');

{{if .HasSlick}}
var slick = L.polygon({{.Boundary}}, {
  color: '#000000',
  weight: 1,
  fillColor: '#782D2D',
  fillOpacity: 0.5
}).addTo(map);
slick.bindTooltip('Affected Area: {{.AreaKm2}} km&sup2;');
map.fitBounds(slick.getBounds().pad(0.5));
{{end}}
</script>
</html>`))
