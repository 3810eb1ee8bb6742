package web

import "html/template"

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))
var resultsTmpl = template.Must(template.New("results").Parse(resultsHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>BarCut - Steel Bar Cutting Optimizer</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; padding: 0 1em; }
label { display: block; margin-top: 1em; font-weight: bold; }
input { margin-top: 0.3em; }
button { margin-top: 1.5em; padding: 0.5em 2em; }
.hint { color: #666; font-size: 0.85em; }
</style>
</head>
<body>
<h1>BarCut</h1>
<p>Upload a cut list and get per-profile cutting patterns for fixed-length stock bars.</p>
<form method="post" action="/optimize" enctype="multipart/form-data">
  <label>Cut list (CSV)
    <input type="file" name="csv_file" accept=".csv" required>
  </label>
  <p class="hint">Columns: Size, Grade, Length(mm), Quantity, Weight(kg/m). Semicolon or comma separated.</p>
  <label>Stock length (mm)
    <input type="number" name="stock_length" value="{{.StockLengthMM}}" min="1" required>
  </label>
  <label>Cut kerf (mm)
    <input type="number" name="cut_kerf" value="{{.KerfMM}}" min="0" step="0.1" required>
  </label>
  <button type="submit">Optimize</button>
</form>
</body>
</html>
`

const resultsHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>BarCut - Results</title>
<style>
body { font-family: sans-serif; max-width: 1080px; margin: 2em auto; padding: 0 1em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #999; padding: 0.3em 0.8em; text-align: right; }
th { background: #eee; }
td.name, th.name { text-align: left; }
.warn { color: #a60; }
.err { color: #c00; }
.over { color: #c00; font-weight: bold; }
</style>
</head>
<body>
<h1>Cutting Stock Results</h1>
<p>Stock length: {{.Settings.StockLengthMM}} mm | Cut kerf: {{.Settings.KerfMM}} mm</p>

{{range .Errors}}<p class="err">{{.}}</p>{{end}}
{{range .Warnings}}<p class="warn">{{.}}</p>{{end}}

<h2>Final Aggregate Report</h2>
<table>
<tr>
<th class="name">Profile</th><th>Stocks Used</th><th>Stock Length (mm)</th>
<th>Weight (kg/m)</th><th>Total Usage (m)</th><th>Effective Usage (m)</th>
<th>Waste (m)</th><th>Total Order Weight (kg)</th><th>Effective Weight (kg)</th>
<th>Waste Weight (kg)</th>
</tr>
{{range .Aggregate}}
<tr>
<td class="name">{{.Profile}}</td><td>{{.StocksUsed}}</td><td>{{.StockLengthMM}}</td>
<td>{{printf "%.2f" .WeightPerMeterKG}}</td><td>{{printf "%.3f" .TotalStockM}}</td>
<td>{{printf "%.3f" .EffectiveUsageM}}</td><td>{{printf "%.3f" .WasteM}}</td>
<td>{{printf "%.2f" .TotalOrderWeightKG}}</td><td>{{printf "%.2f" .EffectiveWeightKG}}</td>
<td>{{printf "%.2f" .WasteWeightKG}}</td>
</tr>
{{end}}
</table>

<h2>Pattern Details</h2>
{{range .Groups}}
<h3>Profile: {{.Profile}}</h3>
<table>
<tr><th class="name">Pattern Name</th><th>Pattern Length (mm)</th><th class="name">Cut Details</th><th>Remaining Waste (mm)</th></tr>
{{range .Patterns}}
<tr>
<td class="name">{{.Name}}{{if .OverLength}} <span class="over">[over length]</span>{{end}}</td>
<td>{{printf "%.0f" .UsedMM}}</td>
<td class="name">{{.CutDetails}}</td>
<td>{{printf "%.0f" .WasteMM}}</td>
</tr>
{{end}}
</table>
{{end}}

<form method="post" action="/download">
  <input type="hidden" name="payload" value="{{.WorkbookB64}}">
  <button type="submit">Download Excel workbook</button>
</form>
<p><a href="/">Back</a></p>
</body>
</html>
`
