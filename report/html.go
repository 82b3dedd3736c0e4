// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
table.bootstat { border-collapse: collapse; }
table.bootstat th { text-align: left; padding-top: 1em; }
table.bootstat td { padding: 0 1em; }
table.bootstat td.same { color: #080; }
table.bootstat td.different { color: #a60; font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table class="bootstat">
{{- range .Sections}}
<tbody>
<tr><th colspan="2">{{.Title}}</th></tr>
{{- range .Rows}}
<tr><td>{{.Label}}</td>
{{- if eq .Signal.String "same"}}<td class="same">{{.Display}}</td>
{{- else if eq .Signal.String "different"}}<td class="different">{{.Display}}</td>
{{- else}}<td>{{.Display}}</td>
{{- end}}</tr>
{{- end}}
</tbody>
{{- end}}
</table>
{{- with .Warnings}}
<h2>Warnings</h2>
<ul>
{{- range .}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
</body>
</html>
`))

// WriteHTML renders d as a standalone HTML page.
func WriteHTML(w io.Writer, d *Document) error {
	return htmlTemplate.Execute(w, d)
}
