package render

// formTemplate is the single page template for published forms, previews
// and the submission acknowledgement.
const formTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
.preview-notice { background: #fef9c3; border: 1px solid #fde047; color: #854d0e; padding: .75rem; border-radius: .5rem; text-align: center; margin-bottom: 1.5rem; }
.field { margin-bottom: 1.5rem; }
.field label.main { display: block; font-weight: 600; margin-bottom: .35rem; }
.field .hint { color: #6b7280; font-style: italic; font-size: .9rem; margin: 0 0 .35rem; }
.field input[type=text], .field input[type=number], .field input[type=date], .field textarea, .field select { width: 100%; padding: .5rem; border: 1px solid #d1d5db; border-radius: .375rem; }
.field .choice { display: flex; align-items: center; gap: .5rem; margin-bottom: .25rem; }
.required-mark { color: #dc2626; margin-left: .15rem; }
.field-error { color: #dc2626; font-size: .9rem; margin-top: .35rem; }
button[type=submit] { background: #4f46e5; color: #fff; border: 0; padding: .75rem 1.5rem; border-radius: .375rem; font-size: 1rem; cursor: pointer; }
.description { color: #4b5563; }
</style>
</head>
<body>
{{- if .Submitted}}
<h1>{{.Title}}</h1>
<p>Your response has been recorded.</p>
{{- else}}
{{- if .Preview}}
<div class="preview-notice">This is a preview of your form. Submissions are disabled.</div>
{{- end}}
<h1>{{.Title}}</h1>
{{- if .Description}}
<p class="description">{{.Description}}</p>
{{- end}}
<form method="post" action="{{.Action}}">
{{- range .Fields}}
<div class="field">
<label class="main" for="{{.ID}}">{{.Label}}{{if .Required}}<span class="required-mark">*</span>{{end}}</label>
{{- if and .Placeholder (ne .Type "checkbox") (ne .Type "radio") (ne .Type "select")}}
<p class="hint">{{.Placeholder}}</p>
{{- end}}
{{- if eq .Type "text"}}
<input type="text" id="{{.ID}}" name="{{.ID}}" value="{{.Value}}" placeholder="{{.Placeholder}}">
{{- else if eq .Type "textarea"}}
<textarea id="{{.ID}}" name="{{.ID}}" placeholder="{{.Placeholder}}">{{.Value}}</textarea>
{{- else if eq .Type "number"}}
<input type="number" id="{{.ID}}" name="{{.ID}}" value="{{.Value}}" placeholder="{{.Placeholder}}">
{{- else if eq .Type "date"}}
<input type="date" id="{{.ID}}" name="{{.ID}}" value="{{.Value}}">
{{- else if eq .Type "select"}}
<select id="{{.ID}}" name="{{.ID}}">
<option value="">{{if .Placeholder}}{{.Placeholder}}{{else}}Select an option{{end}}</option>
{{- range .Options}}
<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{- end}}
</select>
{{- else if eq .Type "checkbox"}}
<div class="choice">
<input type="checkbox" id="{{.ID}}" name="{{.ID}}"{{if .Checked}} checked{{end}}>
</div>
{{- else if eq .Type "radio"}}
{{- $field := .}}
{{- range .Options}}
<div class="choice">
<input type="radio" id="{{$field.ID}}-{{.ID}}" name="{{$field.ID}}" value="{{.Value}}"{{if .Selected}} checked{{end}}>
<label for="{{$field.ID}}-{{.ID}}">{{.Label}}</label>
</div>
{{- end}}
{{- end}}
{{- if .Error}}
<p class="field-error">{{.Error}}</p>
{{- end}}
</div>
{{- end}}
{{- if not .Preview}}
<button type="submit">Submit Form</button>
{{- end}}
</form>
{{- end}}
</body>
</html>
`
