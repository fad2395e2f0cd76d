package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/shop-service/internal/session"
	"github.com/vasiliy-maslov/shop-service/internal/user"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CheckRegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CurrentUserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type HomeResponse struct {
	User   *CurrentUserResponse `json:"user"`
	Notice string               `json:"notice,omitempty"`
}

// AuthHandler serves registration, login/logout and the pre-flight JSON
// endpoints used by the front-end validation scripts.
type AuthHandler struct {
	users    user.Service
	sessions *session.Manager
	validate *validator.Validate
}

func NewAuthHandler(users user.Service, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		validate: newValidator(),
	}
}

func (h *AuthHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.handleHome)
	router.Post("/register", h.handleRegisterForm)
	router.Get("/login", h.handleLoginPage)
	router.Post("/login", h.handleLoginForm)
	router.Get("/logout", h.handleLogout)

	router.Post("/api/login", h.handleAPILogin)
	router.Post("/api/check_register", h.handleCheckRegister)
	router.Post("/api/check_credentials", h.handleCheckCredentials)
}

// handleHome renders the landing state: the current user (if any) and the
// pending one-shot notice.
func (h *AuthHandler) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	resp := HomeResponse{Notice: sess.PopFlash()}

	if userID, ok := sess.UserID(); ok {
		currentUser, err := h.users.GetByID(r.Context(), userID)
		switch {
		case errors.Is(err, user.ErrNotFound):
			// Пользователь исчез из БД — считаем сессию анонимной.
			sess.Logout()
		case err != nil:
			log.Error().Err(err).Msg("Failed to load current user")
		default:
			resp.User = &CurrentUserResponse{
				ID:        currentUser.ID.String(),
				FirstName: currentUser.FirstName,
				LastName:  currentUser.LastName,
				Email:     currentUser.Email,
			}
		}
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	respondWithJSON(w, http.StatusOK, map[string]string{"notice": sess.PopFlash()})
}

// handleRegisterForm is the form-encoded registration flow: one notice,
// redirect back on failure, redirect to the login page on success.
func (h *AuthHandler) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	input := user.RegisterInput{
		FirstName:       r.PostFormValue("first_name"),
		LastName:        r.PostFormValue("last_name"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	_, err := h.users.Register(r.Context(), input)
	if err != nil {
		var fieldErrors user.FieldErrors
		if errors.As(err, &fieldErrors) {
			sess.SetFlash(firstMessage(fieldErrors))
		} else {
			log.Error().Err(err).Msg("Failed to register user via service")
			sess.SetFlash("Registration failed. Please try again.")
		}
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	sess.SetFlash("Registration successful. Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLoginForm is the form-encoded login flow. It deliberately reports
// one generic notice instead of per-field errors, so the page does not
// leak whether the email or the password was wrong.
func (h *AuthHandler) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	authedUser, err := h.users.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		var fieldErrors user.FieldErrors
		if errors.As(err, &fieldErrors) {
			sess.SetFlash("Invalid email or password.")
		} else {
			log.Error().Err(err).Msg("Failed to authenticate user via service")
			sess.SetFlash("Login failed. Please try again.")
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sess.Login(authedUser.ID)
	sess.SetFlash("Login successful.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	sess.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleAPILogin authenticates and binds the session user. Per-field
// errors are reported separately here: this is the structured revision of
// the login flow.
func (h *AuthHandler) handleAPILogin(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	requestPayload, ok := h.decodeLoginRequest(w, r)
	if !ok {
		return
	}

	authedUser, err := h.users.Authenticate(r.Context(), requestPayload.Email, requestPayload.Password)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	sess.Login(authedUser.ID)
	respondWithJSON(w, http.StatusOK, APIResult{Success: true, RedirectURL: "/"})
}

// handleCheckCredentials verifies the credentials without touching the
// session. The front-end calls it before submitting the login form.
func (h *AuthHandler) handleCheckCredentials(w http.ResponseWriter, r *http.Request) {
	requestPayload, ok := h.decodeLoginRequest(w, r)
	if !ok {
		return
	}

	_, err := h.users.Authenticate(r.Context(), requestPayload.Email, requestPayload.Password)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, APIResult{Success: true, RedirectURL: "/"})
}

// handleCheckRegister reports whether an email is still available.
func (h *AuthHandler) handleCheckRegister(w http.ResponseWriter, r *http.Request) {
	var requestPayload CheckRegisterRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		h.respondValidationError(w, err)
		return
	}

	taken, err := h.users.EmailTaken(r.Context(), requestPayload.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check email availability via service")
		respondWithFieldErrors(w, http.StatusInternalServerError, map[string]string{
			"email": "Could not check email availability.",
		})
		return
	}

	if taken {
		respondWithFieldErrors(w, http.StatusConflict, map[string]string{
			"email": "Email is already registered.",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, APIResult{Success: true})
}

func (h *AuthHandler) decodeLoginRequest(w http.ResponseWriter, r *http.Request) (LoginRequest, bool) {
	var requestPayload LoginRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return LoginRequest{}, false
	}

	if err := h.validate.Struct(requestPayload); err != nil {
		h.respondValidationError(w, err)
		return LoginRequest{}, false
	}

	return requestPayload, true
}

func (h *AuthHandler) respondValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondWithFieldErrors(w, http.StatusBadRequest, formatValidationErrors(validationErrors))
		return
	}

	log.Error().Err(err).Type("validation_error_type", err).Msg("Unexpected error type during validation")
	respondWithError(w, http.StatusInternalServerError, "Internal validation error")
}

func (h *AuthHandler) respondAuthError(w http.ResponseWriter, err error) {
	var fieldErrors user.FieldErrors
	if errors.As(err, &fieldErrors) {
		respondWithFieldErrors(w, http.StatusUnauthorized, fieldErrors)
		return
	}

	log.Error().Err(err).Msg("Failed to authenticate user via service")
	respondWithError(w, http.StatusInternalServerError, "Failed to verify credentials")
}
