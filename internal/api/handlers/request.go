package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/PawsBubbles-BookingService/internal/domain"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/types"
)

var (
	// ErrEmptyBody тело запроса пустое
	ErrEmptyBody = errors.New("handlers: empty request body")

	// ErrInvalidPathParam параметр пути отсутствует или невалиден
	ErrInvalidPathParam = errors.New("handlers: invalid path parameter")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// в ошибках поля называются так же, как в JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("petsize", validatePetSize); err != nil {
		panic(fmt.Sprintf("handlers: register petsize validator: %v", err))
	}
	if err := v.RegisterValidation("hhmm", validateHHMM); err != nil {
		panic(fmt.Sprintf("handlers: register hhmm validator: %v", err))
	}

	return v
}

func validatePetSize(fl validator.FieldLevel) bool {
	return domain.PetSize(fl.Field().String()).Valid()
}

// validateHHMM принимает "HH:MM" и "HH:MM:SS"
func validateHHMM(fl validator.FieldLevel) bool {
	_, err := types.NewTimeStringFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// Validate проверяет структуру по тегам validate
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// FieldError описание невалидного поля
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// FieldErrors раскладывает ошибку валидатора по полям
func FieldErrors(err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	fields := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return fields
}

// PathUUID достаёт UUID из параметра пути gorilla/mux
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is missing", ErrInvalidPathParam, name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", ErrInvalidPathParam, name, err)
	}
	return id, nil
}
