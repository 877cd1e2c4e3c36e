package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/requestctx"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxBodySize = 1 << 20

type validatable interface {
	Validate() error
}

// decodeAndValidate reads a JSON body into dst and runs its Validate. On failure the response is
// already written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			response.BadRequest(w, "Request body is required")
		case errors.As(err, &maxErr):
			response.Error(w, http.StatusRequestEntityTooLarge, "Request body is too large")
		default:
			response.BadRequest(w, "Invalid request format")
		}
		return false
	}

	if err := dst.Validate(); err != nil {
		response.HandleError(w, err)
		return false
	}
	return true
}

// pathID returns the named URL parameter when it is a UUID.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if !validator.IsValidUUID(id) {
		response.ValidationError(w, validator.ValidationErrors{{Field: name, Message: name + " must be a valid UUID"}})
		return "", false
	}
	return id, true
}

func tenantFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	tenantID, ok := requestctx.TenantFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return "", false
	}
	return tenantID, true
}

// optionalUUID validates an optional query parameter.
func optionalUUID(errs *validator.ValidationErrors, r *http.Request, name string) string {
	v := r.URL.Query().Get(name)
	if v != "" && !validator.IsValidUUID(v) {
		errs.Add(name, name+" must be a valid UUID")
	}
	return v
}

func optionalPeriod(errs *validator.ValidationErrors, r *http.Request) string {
	v := r.URL.Query().Get("period")
	if v != "" && !validator.IsValidPeriod(v) {
		errs.Add("period", "period must be in MM-YYYY format")
	}
	return v
}
