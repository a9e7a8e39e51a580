package protocols

import (
	"encoding/csv"
	"html/template"
	"io"
	"strconv"
	"strings"

	"protocolkb/pkg/protocolapi"
)

// csvColumns is the summary layout shared by the list endpoint and CSV
// export artifacts.
var csvColumns = []string{
	"id", "name", "category", "intensity", "evidence",
	"recommended_days", "herbs", "ailments", "regions",
}

const listSeparator = "; "

// WriteCSV writes the protocol summary table, one row per protocol, with list
// columns joined by "; ".
func WriteCSV(w io.Writer, protocols []protocolapi.Protocol) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return err
	}
	for _, p := range protocols {
		record := []string{
			p.ID,
			p.Name,
			string(p.Category),
			string(p.Intensity),
			string(p.Evidence),
			strconv.Itoa(p.Duration.Recommended),
			strings.Join(p.HerbNames(), listSeparator),
			strings.Join(p.AilmentTargets, listSeparator),
			strings.Join(p.RegionalAvailability, listSeparator),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

var sheetTemplate = template.Must(template.New("sheet").Funcs(template.FuncMap{
	"join": func(values []string) string { return strings.Join(values, ", ") },
}).Parse(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>{{.Title}}</title></head><body>
{{range .Protocols}}<section id="{{.ID}}">
<h1>{{.Name}}</h1>
<p>{{.Description}}</p>
<p>Category: {{.Category}} | Intensity: {{.Intensity}} | Evidence: {{.Evidence}} | Duration: {{.Duration.Minimum}}-{{.Duration.Maximum}} days (recommended {{.Duration.Recommended}})</p>
<table><thead><tr><th>Herb</th><th>Latin name</th><th>Dosage</th><th>Timing</th></tr></thead><tbody>
{{range .PrimaryHerbs}}<tr><td>{{.Name}}</td><td>{{.LatinName}}</td><td>{{.Dosage}}</td><td>{{.Timing}}</td></tr>
{{end}}</tbody></table>
<ol>{{range .Protocol}}<li>{{.Name}} ({{.Duration}} days): {{.Objective}}. Herbs: {{join .Herbs}}</li>{{end}}</ol>
<p>Contraindications: {{join .Contraindications}}</p>
<p>Side effects: {{join .SideEffects}}</p>
</section>
{{end}}</body></html>
`))

type sheetData struct {
	Title     string
	Protocols []protocolapi.Protocol
}

func writeProtocolHTML(w io.Writer, title string, protocols []protocolapi.Protocol) error {
	return sheetTemplate.Execute(w, sheetData{Title: title, Protocols: protocols})
}
