package api

import (
	"errors"                                 // Error comparison
	"net/http"                               // HTTP status codes
	"regexp"                                 // Regular expressions
	"restaurant_booking/internal/domain"     // Importing domain models
	"restaurant_booking/internal/middleware" // Session cookie helpers
	"restaurant_booking/internal/store"      // Persistence
	"strings"                                // String manipulation

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Email format check
	"github.com/sirupsen/logrus"             // Logging library
	"golang.org/x/crypto/bcrypt"             // Password hashing
)

// SignupForm is the registration input
type SignupForm struct {
	Username        string `form:"username"`         // Desired username
	Email           string `form:"email"`            // Email, compared case-insensitively
	Password        string `form:"password"`         // Plain password
	PasswordConfirm string `form:"password_confirm"` // Must equal Password
}

// LoginForm is the login input
type LoginForm struct {
	Login    string `form:"login"`    // Username or email
	Password string `form:"password"` // Plain password
}

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`) // Letters, digits and underscores
	validate        = validator.New()                            // Shared validator instance
)

const msgDuplicateUser = "username or email is already in use"

// check validates the signup fields and returns per-field messages
func (f *SignupForm) check() map[string]string {
	errs := map[string]string{}
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	if !usernamePattern.MatchString(f.Username) {
		errs["username"] = "username must be 3-30 letters, digits or underscores"
	}
	if f.Email == "" || validate.Var(f.Email, "email") != nil {
		errs["email"] = "a valid email is required"
	}
	// bcrypt ignores bytes beyond 72
	if len(f.Password) < 8 || len(f.Password) > 72 {
		errs["password"] = "password must be 8-72 characters"
	} else if f.Password != f.PasswordConfirm {
		errs["password_confirm"] = "passwords do not match"
	}
	return errs
}

// SignupPage renders the registration form
func (h *Handler) SignupPage(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.tmpl", gin.H{"Title": "Sign up", "Form": SignupForm{}, "Errors": map[string]string{}})
}

// CreateUser registers a user and signs them in
func (h *Handler) CreateUser(c *gin.Context) {
	var form SignupForm // Bind form to struct
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusSeeOther, "/signup?error=signup_failed")
		return
	}
	rerender := func(errs map[string]string) {
		form.Password, form.PasswordConfirm = "", "" // Never echo passwords
		h.render(c, http.StatusUnprocessableEntity, "signup.tmpl", gin.H{"Title": "Sign up", "Form": form, "Errors": errs})
	}
	if errs := form.check(); len(errs) > 0 {
		rerender(errs) // Show field errors with input preserved
		return
	}
	// Hash the password and create the user
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Failed to hash password")
		c.Redirect(http.StatusSeeOther, "/signup?error=signup_failed")
		return
	}
	user := domain.User{Username: form.Username, Email: form.Email, PasswordHash: string(hash)}
	if err := h.Store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			rerender(map[string]string{"form": msgDuplicateUser}) // Username or email taken
			return
		}
		logrus.WithFields(logrus.Fields{
			"username": form.Username, // Requested username
			"error":    err.Error(),   // Error message
		}).Error("Signup failed")
		c.Redirect(http.StatusSeeOther, "/signup?error=signup_failed")
		return
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	h.startSession(c, user.ID)
	c.Redirect(http.StatusSeeOther, "/")
}

// LoginPage renders the login form; signed-in users go home
func (h *Handler) LoginPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, http.StatusOK, "login.tmpl", gin.H{"Title": "Log in", "Form": LoginForm{}, "Errors": map[string]string{}})
}

// Login authenticates a user and issues a session cookie
func (h *Handler) Login(c *gin.Context) {
	var form LoginForm // Bind form to struct
	if err := c.ShouldBind(&form); err != nil {
		logrus.WithField("error", err.Error()).Warn("Login form could not be read")
		c.Redirect(http.StatusSeeOther, "/login?error=login_failed")
		return
	}
	invalid := func() {
		form.Password = ""
		h.render(c, http.StatusUnauthorized, "login.tmpl", gin.H{
			"Title":  "Log in",
			"Form":   form,
			"Errors": map[string]string{"form": "invalid username or password"},
		})
	}
	user, err := h.Store.FindUserByLogin(c.Request.Context(), form.Login)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logrus.WithField("error", err.Error()).Error("Login lookup failed")
		}
		invalid() // Unknown user
		return
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		invalid()
		return
	}
	h.startSession(c, user.ID)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the session
func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearSession(c, h.SecureCookies)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) startSession(c *gin.Context, userID uint) {
	if err := middleware.StartSession(c, userID, h.Secret, h.SessionTTL, h.SecureCookies); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Failed to issue session")
	}
}
