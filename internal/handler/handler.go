package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"socialnetwork/internal/config"
	"socialnetwork/internal/models"
	"socialnetwork/internal/service"
)

// Pinger is satisfied by *database.DB.
type Pinger interface {
	HealthCheck() error
}

type Handlers struct {
	AuthService    service.AuthService
	ProfileService service.ProfileService
	FollowService  service.FollowService
	PostService    service.PostService
	TablesService  service.TablesService
	DB             Pinger
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, db Pinger, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		ProfileService: service.Profile,
		FollowService:  service.Follow,
		PostService:    service.Post,
		TablesService:  service.Tables,
		DB:             db,
		Cfg:            config,
		Validate:       newValidator(),
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type callerKey struct{}

// WithCaller stores the authenticated caller for downstream handlers.
func WithCaller(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the zero Caller when the request was not authenticated.
func CallerFrom(ctx context.Context) models.Caller {
	caller, _ := ctx.Value(callerKey{}).(models.Caller)
	return caller
}

var errMalformedBody = errors.New("malformed request body")

// decodeJSON tolerates an empty body so that all-optional payloads may be omitted.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

func (h *Handlers) validate(req any) error {
	err := h.Validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Field()+": "+describe(fe))
	}
	return errors.New(strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}

func notBlank(field string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return fmt.Errorf("%s: This field may not be blank.", field)
	}
	return nil
}
