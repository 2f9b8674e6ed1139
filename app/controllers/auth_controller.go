package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
	"github.com/dark-store/bukafresh/internal/pkg/session"
	"github.com/dark-store/bukafresh/internal/pkg/usercontext"
)

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates an account and opens a session for it. Checkout
// reaches this from the account step, so registering logs the user in.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}
	if len(req.Password) < 8 {
		return failure(c, apperr.Validation("Password must be at least 8 characters"))
	}

	repo := repository.GetGlobalRepositories().User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := repo.GetByEmail(email); err == nil && existing != nil {
		return failure(c, apperr.Conflict("An account with this email already exists"))
	}

	user, err := models.CreateUser(req.FirstName, req.LastName, email, req.Phone, req.Password)
	if err != nil {
		return failure(c, apperr.Validation(err.Error()))
	}
	if err := repo.Create(user); err != nil {
		return failure(c, err)
	}

	if err := openSession(c, user); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusCreated, userProfile(user), "Account created")
}

// HandleLogin authenticates by email and password.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}

	repo := repository.GetGlobalRepositories().User
	user, err := repo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure(c, apperr.Validation("Invalid email or password"))
		}
		return failure(c, err)
	}
	if !user.CheckPassword(req.Password) {
		return failure(c, apperr.Validation("Invalid email or password"))
	}

	if err := openSession(c, user); err != nil {
		return failure(c, err)
	}
	_ = repo.TouchLastLogin(user.ID, time.Now())
	return success(c, fiber.StatusOK, userProfile(user), "Logged in")
}

// HandleLogout destroys the session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return success(c, fiber.StatusOK, nil, "Logged out")
}

// HandleMe returns the logged-in user's profile.
func HandleMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	user, err := repository.GetGlobalRepositories().User.GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failure(c, apperr.NotFound("User not found"))
		}
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, userProfile(user), "")
}

func openSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}
	sess.Set(SessionKeyUserID, user.ID)
	sess.Set(SessionKeyEmail, user.Email)
	sess.Set(SessionKeyFirstName, user.FirstName)
	sess.Set(SessionKeyPhone, user.Phone)
	return sess.Save()
}

func userProfile(user *models.User) fiber.Map {
	return fiber.Map{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
		"phone":      user.Phone,
	}
}
