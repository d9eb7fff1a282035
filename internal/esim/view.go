package esim

import "html/template"

// pageView is the template model for the lookup page.
type pageView struct {
	ICCID   string
	Kind    string
	Message string
	Status  int
	Payload string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>eSIM Device Lookup</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
input[type=text] { width: 20rem; padding: .4rem; }
pre { background: #f4f4f4; padding: 1rem; overflow-x: auto; }
.error { color: #a00; }
</style>
</head>
<body>
<h1>eSIM Device Lookup</h1>
<form method="get" action="/">
<input type="text" name="iccid" value="{{.ICCID}}" placeholder="ICCID">
<button type="submit">Look up</button>
</form>
{{if eq .Kind "missing_input"}}
<p>Enter an ICCID to look up its device details.</p>
{{else if eq .Kind "success"}}
<h2>Result for {{.ICCID}}</h2>
<pre>{{.Payload}}</pre>
{{else if eq .Kind "vendor_error"}}
<p class="error">Vendor error (HTTP {{.Status}}): {{.Message}}</p>
{{if .Payload}}<pre>{{.Payload}}</pre>{{end}}
{{else}}
<p class="error">{{.Message}}</p>
{{end}}
</body>
</html>
`))
