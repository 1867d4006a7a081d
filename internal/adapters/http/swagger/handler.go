// Package swagger serves the OpenAPI description of the HTTP API.
package swagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.yaml.in/yaml/v3"
)

// Error constants.
var (
	ErrServe = errors.New("swagger serve failed")
)

var (
	jsonOnce sync.Once //nolint:gochecknoglobals // lazily converted document
	jsonDoc  []byte    //nolint:gochecknoglobals // lazily converted document
	jsonErr  error     //nolint:gochecknoglobals // lazily converted document
)

// Register attaches the OpenAPI document routes to mux.
// Routes:
//
//	GET /openapi.yaml -> embedded OpenAPI document
//	GET /openapi.json -> the same document converted to JSON
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})

	mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		doc, err := JSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(doc)
	})
}

// JSON returns the embedded document encoded as JSON.
func JSON() ([]byte, error) {
	jsonOnce.Do(func() {
		var doc map[string]any
		if err := yaml.Unmarshal(OpenAPI, &doc); err != nil {
			jsonErr = fmt.Errorf("%w: parse openapi.yaml: %w", ErrServe, err)
			return
		}
		jsonDoc, jsonErr = json.Marshal(doc)
		if jsonErr != nil {
			jsonErr = fmt.Errorf("%w: %w", ErrServe, jsonErr)
		}
	})
	return jsonDoc, jsonErr
}
