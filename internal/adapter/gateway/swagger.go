package gateway

import (
	_ "embed"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

//go:embed swagger/app.swagger.json
var swaggerDoc []byte

// SwaggerJSONPath is where the OpenAPI document is served.
const SwaggerJSONPath = "/swagger/app.swagger.json"

// RegisterSwagger serves the OpenAPI document and the Swagger UI on mux.
func RegisterSwagger(mux *http.ServeMux) {
	mux.HandleFunc(SwaggerJSONPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(swaggerDoc)
	})

	mux.HandleFunc("/swagger/", httpSwagger.Handler(
		httpSwagger.URL(SwaggerJSONPath),
	))
}
