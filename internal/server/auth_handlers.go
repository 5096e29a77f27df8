package server

import (
	"strconv"
	"time"

	"inkwell/internal/forms"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 7 * 24 * time.Hour

// SignupForm handles GET /auth/signup
func (s *Server) SignupForm(c *fiber.Ctx) error {
	return renderForm(c, "signup", &forms.SignupForm{}, nil)
}

// Signup handles POST /auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var form forms.SignupForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if errs := form.Validate(); !errs.Valid() {
		return renderForm(c, "signup", &form, errs)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		if models.HasCode(err, models.CodeConstraintViolation) {
			return renderForm(c, "signup", &form, map[string]string{
				"username": "Username or email is already taken",
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.startSession(c, user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return seeOther(c, safeNext(c.FormValue("next")))
}

// LoginForm handles GET /auth/login
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"view": "login",
		"next": safeNext(c.Query("next")),
	})
}

// Login handles POST /auth/login. On success it redirects to the validated
// return-to path, so an interrupted action resumes where it left off.
func (s *Server) Login(c *fiber.Ctx) error {
	var form struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
		Next     string `json:"next" form:"next"`
	}
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), form.Username)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid credentials"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if err := s.startSession(c, user.ID); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return seeOther(c, safeNext(form.Next))
}

// Logout handles POST /auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return seeOther(c, "/")
}

func (s *Server) startSession(c *fiber.Ctx, userID uint) error {
	token, err := s.generateSessionToken(userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

func (s *Server) generateSessionToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "inkwell",
		"exp": now.Add(sessionTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SessionKey))
}
