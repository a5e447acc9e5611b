// Package web serves the embedded chat client.
package web

import (
	"embed"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// Handler serves the chat client: index.html at the root, assets under
// /static/.
func Handler() http.Handler {
	files := http.FileServer(http.FS(staticFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			data, err := staticFS.ReadFile("static/index.html")
			if err != nil {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(data)
			return
		}
		files.ServeHTTP(w, r)
	})
}
