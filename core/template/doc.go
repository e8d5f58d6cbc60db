// Package template renders named html/template files with a map of variables.
//
//	r := template.New("templates")
//	page, err := r.Render("hello.html", map[string]any{"Name": "Ada"})
//
// A missing file returns ErrTemplateNotFound and a template referring to a
// variable absent from the map returns ErrRender. Output is HTML-escaped by
// html/template.
package template
