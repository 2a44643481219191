package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

var tmpls = htmpl.Must(htmpl.ParseFS(FS, "*.tmpl"))

// Subjects per template name.
var subjects = map[string]string{
	"welcome":        "Welcome to the Tourbook family!",
	"password_reset": "Your password reset token (valid for only 10 minutes)",
}

// Render produces subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpls.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
