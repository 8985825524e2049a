package rest

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
)

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<form id="submission-form" action="/submit" method="post" enctype="multipart/form-data">
{{- range .Fields}}
<p><label for="{{.Name}}">{{.Label}}</label><br><input type="text" id="{{.Name}}" name="{{.Name}}" maxlength="{{$.MaxLength}}" required></p>
{{- end}}
<p><label for="{{.FileField}}">{{.FileLabel}}</label><br><input type="file" id="{{.FileField}}" name="{{.FileField}}" accept="{{.Accept}}" required></p>
<p><button type="submit">Submit</button></p>
</form>
<div id="message" role="status"></div>
<script>
document.getElementById("submission-form").addEventListener("submit", async function (event) {
  event.preventDefault();
  const message = document.getElementById("message");
  message.className = "";
  message.textContent = "Submitting...";
  try {
    const response = await fetch("/submit", { method: "POST", body: new FormData(event.target) });
    const result = await response.json();
    if (response.ok) {
      message.className = "success";
      message.textContent = "Form submitted successfully! ID: " + result.submission_id;
      event.target.reset();
      return;
    }
    let text = "Error: " + result.error;
    if (result.fields) {
      text += " (" + result.fields.map(function (f) { return f.field + ": " + f.message; }).join(", ") + ")";
    }
    message.className = "error";
    message.textContent = text;
  } catch (err) {
    message.className = "error";
    message.textContent = "Error: " + err.message;
  }
});
</script>
</body>
</html>
`))

type formField struct {
	Name  string
	Label string
}

type formPage struct {
	Title     string
	Fields    []formField
	FileField string
	FileLabel string
	Accept    string
	MaxLength int
}

// FormPage handles GET / with an HTML form built from the configured fields.
func (h *SubmissionHandler) FormPage(w http.ResponseWriter, r *http.Request) {
	page := formPage{
		Title:     h.form.Title,
		FileField: h.form.FileField,
		FileLabel: label(h.form.FileField),
		Accept:    "image/*",
		MaxLength: h.form.MaxFieldLength,
	}
	for _, name := range h.form.RequiredFields {
		page.Fields = append(page.Fields, formField{Name: name, Label: label(name)})
	}

	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, page); err != nil {
		h.log.ErrorContext(r.Context(), "render form", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// label turns "id_number" into "Id number".
func label(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
