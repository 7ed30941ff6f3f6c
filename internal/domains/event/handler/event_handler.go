package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"event-manager/internal/domains/event/model"
	"event-manager/internal/domains/event/service"
	"event-manager/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
)

// Handler exposes the event service over JSON
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListEvents - GET /api/v1/events
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.service.ListEvents(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, events)
}

// CreateEvent - POST /api/v1/events
func (h *Handler) CreateEvent(c *gin.Context) {
	var req model.EventRequest
	if !h.bindJSON(c, &req) {
		return
	}

	id, err := h.service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/events/"+id)
	response.Success(c, http.StatusCreated, model.CreateEventResponse{ID: id})
}

// GetEvent - GET /api/v1/events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.service.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, event)
}

// UpdateEvent - PUT /api/v1/events/:id
// nftMintAddress in the body is ignored; use the mint-address route.
func (h *Handler) UpdateEvent(c *gin.Context) {
	var req model.EventRequest
	if !h.bindJSON(c, &req) {
		return
	}

	event, err := h.service.UpdateEvent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, event)
}

// DeleteEvent - DELETE /api/v1/events/:id
func (h *Handler) DeleteEvent(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.DeleteEventResponse{ID: id, Deleted: true})
}

// AttachMintAddress - PUT /api/v1/events/:id/mint-address
func (h *Handler) AttachMintAddress(c *gin.Context) {
	var req model.MintAddressRequest
	if !h.bindJSON(c, &req) {
		return
	}

	event, err := h.service.AttachMintAddress(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, event)
}

// bindJSON decodes the body into dst and writes the error response when it
// cannot. A body that is not JSON is an unexpected failure (500); fields of
// the wrong JSON type are reported with the other field errors (400).
func (h *Handler) bindJSON(c *gin.Context, dst interface{}) bool {
	body, err := c.GetRawData()
	if err == nil {
		err = json.Unmarshal(body, dst)
	}
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("unreadable request body")
		response.InternalServerError(c, "Failed to process request")
		return false
	}

	h.handleError(c, model.NewValidationError(fieldTypeErrors(body, dst)))
	return false
}

// fieldTypeErrors lists every known field whose JSON value is not a string,
// together with the rule violations of the fields that did decode.
func fieldTypeErrors(body []byte, dst interface{}) validation.Errors {
	errs := validation.Errors{}

	if n, ok := dst.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	if v, ok := dst.(validation.Validatable); ok {
		var fieldErrs validation.Errors
		if errors.As(v.Validate(), &fieldErrs) {
			for field, err := range fieldErrs {
				errs[field] = err
			}
		}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		errs["body"] = errors.New("must be a JSON object")
		return errs
	}
	for _, field := range jsonFieldNames(dst) {
		value, ok := raw[field]
		if !ok {
			continue
		}
		if v := strings.TrimSpace(string(value)); v != "null" && !strings.HasPrefix(v, `"`) {
			errs[field] = errors.New("must be a string")
		}
	}
	return errs
}

func jsonFieldNames(dst interface{}) []string {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

func (h *Handler) handleError(c *gin.Context, err error) {
	httpErr := model.MapErrorToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("event request failed")
	}
	response.ErrorWithDetails(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
