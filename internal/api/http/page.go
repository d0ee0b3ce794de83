package httpapi

import (
	"bytes"
	"html/template"

	"github.com/i474232898/weather-lookup/internal/session"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Weather lookup</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 32rem; margin: 3rem auto; padding: 0 1rem; }
form { display: flex; gap: .5rem; }
input[type=text] { flex: 1; padding: .5rem; }
.card { margin-top: 1.5rem; padding: 1rem; border: 1px solid #ddd; border-radius: .5rem; }
.message { margin-top: 1.5rem; color: #a33; }
.message.not-found { color: #a60; }
dl { display: grid; grid-template-columns: max-content 1fr; gap: .25rem 1rem; }
dt { color: #666; }
</style>
</head>
<body>
<h1>Weather lookup</h1>
<form method="post" action="/search">
  <input type="text" name="city" placeholder="Enter a city" value="{{.Query}}" autofocus>
  <button type="submit"{{if .Loading}} disabled{{end}}>{{if .Loading}}Loading…{{else}}Search{{end}}</button>
</form>
{{with .Outcome}}
{{if .Report}}{{with .Report}}
<div class="card">
  <h2>{{.Headline}}</h2>
  <dl>
    <dt>Temperature</dt><dd>{{.Temperature}}</dd>
    <dt>Condition</dt><dd>{{.Description}}</dd>
    <dt>Wind</dt><dd>{{.Wind}}</dd>
    <dt>Observed</dt><dd>{{.Current.Time}}</dd>
  </dl>
  <a href="{{.MapURL}}" target="_blank" rel="noopener">View on map</a>
</div>
{{end}}{{else}}
<p class="message{{if eq .Status "not_found"}} not-found{{end}}">{{.Message}}</p>
{{end}}
{{end}}
</body>
</html>
`))

func renderPage(v session.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
