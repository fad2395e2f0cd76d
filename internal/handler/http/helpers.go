package http

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// APIResult — общий конверт для JSON-ручек: success + redirect_url либо
// success + errors по полям.
type APIResult struct {
	Success     bool              `json:"success"`
	RedirectURL string            `json:"redirect_url,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// respondWithJSON отправляет JSON ответ
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondWithError отправляет JSON ошибку
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithFieldErrors(w http.ResponseWriter, code int, errs map[string]string) {
	respondWithJSON(w, code, APIResult{Success: false, Errors: errs})
}

func newValidator() *validator.Validate {
	validate := validator.New()
	// В ошибках валидации используем имена полей из json-тегов, чтобы ключи
	// совпадали с именами полей формы.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func formatValidationErrors(validationErrors validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		switch fieldError.Tag() {
		case "required":
			details[fieldError.Field()] = "This field is required."
		case "email":
			details[fieldError.Field()] = "Please enter a valid email."
		case "min":
			details[fieldError.Field()] = "Value is too short."
		default:
			details[fieldError.Field()] = "Invalid value."
		}
	}
	return details
}

// firstMessage returns the single message from a fail-fast FieldErrors.
func firstMessage(errs map[string]string) string {
	for _, msg := range errs {
		return msg
	}
	return ""
}
