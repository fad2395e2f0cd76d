package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Тот же паттерн, что использует фронтенд: ровно один @ и точка в домене.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

const minPasswordLen = 6

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register validates the input and creates a new user. Validation is
// fail-fast: the returned FieldErrors always holds exactly one message,
// keyed by the first failing field. The duplicate-email check is left to
// the unique constraint, so two racing registrations cannot both succeed.
func (s *service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if fe := validateRegisterInput(input); fe != nil {
		return nil, fe
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to hash password")
		return nil, fmt.Errorf("service: failed to hash password: %w", err)
	}

	newUser := &User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hashBytes),
	}

	createdID, err := s.repo.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, FieldErrors{"email": "Email is already registered."}
		}

		log.Error().Err(err).Msg("service: failed to create user in repository")
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}

	newUser.ID = createdID

	log.Info().Stringer("user_id", createdID).Msg("service: user registered")

	return newUser, nil
}

func validateRegisterInput(input RegisterInput) FieldErrors {
	switch {
	case input.FirstName == "":
		return FieldErrors{"first_name": "Please enter your first name."}
	case input.LastName == "":
		return FieldErrors{"last_name": "Please enter your last name."}
	case input.Email == "":
		return FieldErrors{"email": "Please enter your email."}
	case input.Password == "":
		return FieldErrors{"password": "Please enter a password."}
	case input.ConfirmPassword == "":
		return FieldErrors{"confirm_password": "Please confirm your password."}
	case !emailPattern.MatchString(input.Email):
		return FieldErrors{"email": "Please enter a valid email."}
	case len(input.Password) < minPasswordLen:
		return FieldErrors{"password": "Password must be at least 6 characters."}
	case input.Password != input.ConfirmPassword:
		return FieldErrors{"confirm_password": "Passwords do not match."}
	}
	return nil
}

// Authenticate checks the credentials and returns the matching user.
// Unlike Register, errors are collected independently per field, so an
// unknown email and an empty password are reported together. The password
// is only checked against the hash when the account actually exists.
func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	fe := FieldErrors{}

	var foundUser *User

	if email == "" {
		fe["email"] = "Please enter your email."
	} else {
		u, err := s.repo.GetByEmail(ctx, email)
		switch {
		case errors.Is(err, ErrNotFound):
			fe["email"] = "No account found with this email."
		case err != nil:
			log.Error().Err(err).Msg("service: failed to get user by email in repository")
			return nil, fmt.Errorf("service: failed to get user by email: %w", err)
		default:
			foundUser = u
		}
	}

	if password == "" {
		fe["password"] = "Please enter your password."
	} else if foundUser != nil {
		// Верификация bcrypt — сравнение без утечки по времени.
		if bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)) != nil {
			fe["password"] = "Incorrect password."
		}
	}

	if len(fe) > 0 {
		return nil, fe
	}

	log.Info().Stringer("user_id", foundUser.ID).Msg("service: user authenticated")

	return foundUser, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}

		log.Error().Err(err).Msg("service: failed to get user by id in repository")
		return nil, fmt.Errorf("service: failed to get user by id '%s': %w", id, err)
	}

	return u, nil
}

// EmailTaken is a read-only availability check for the registration
// pre-flight endpoint. It makes no atomicity promise: the unique
// constraint in Create remains authoritative.
func (s *service) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}

		log.Error().Err(err).Msg("service: failed to check email availability")
		return false, fmt.Errorf("service: failed to check email availability: %w", err)
	}

	return true, nil
}
