package httpkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger mounts the docs UI under /docs, pointed at the given
// spec URL; disabled deployments skip the mount entirely
func MountSwagger(r Router, enabled bool, specURL string) {
	if !enabled {
		return
	}
	h := httpSwagger.Handler(httpSwagger.URL(specURL))
	r.Get("/docs/*", func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	})
}
