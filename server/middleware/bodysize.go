package middleware

import (
	"net/http"

	"github.com/kbukum/storefront/util"
)

const defaultMaxBodySize = 64 * 1024

// BodySizeLimit restricts request bodies to maxSize (e.g. "64KB").
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
