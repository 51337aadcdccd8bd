package handlers

import (
	"html/template"
	"log"
	"net/http"
)

// Page routes are thin stubs; the real UI is a separate client build. They
// exist so the access gate has something to protect and redirect between.
var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}} | Handwriting Trainer</title></head>
<body><h1>{{.Title}}</h1></body>
</html>
`))

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) page(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, struct{ Title string }{Title: title}); err != nil {
			log.Printf("ERROR [PageHandler] render %s: %v", r.URL.Path, err)
		}
	}
}

func (h *PageHandler) Login() http.HandlerFunc          { return h.page("Log in") }
func (h *PageHandler) Register() http.HandlerFunc       { return h.page("Register") }
func (h *PageHandler) ForgotPassword() http.HandlerFunc { return h.page("Forgot password") }
func (h *PageHandler) Profile() http.HandlerFunc        { return h.page("My profile") }
func (h *PageHandler) Practice() http.HandlerFunc       { return h.page("Practice") }
