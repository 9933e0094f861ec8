package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"greenpoints-backend/internal/auth"
	"greenpoints-backend/internal/store"
)

type registerForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	DormID   int64  `form:"dorm_id" binding:"gte=0"`
}

// Register creates an account and sends the browser back to the landing page.
func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		inlineError(c, http.StatusBadRequest, "Please provide a valid email and password")
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		inlineError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	// An empty dorm select binds as 0.
	var dormID *int64
	if form.DormID > 0 {
		dormID = &form.DormID
	}

	if _, err := h.store.CreateUser(c.Request.Context(), form.Email, hash, dormID); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			inlineError(c, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, store.ErrDormNotFound):
			inlineError(c, http.StatusBadRequest, "Unknown dorm")
		default:
			log.Printf("Error registering user: %v", err)
			inlineError(c, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Login verifies credentials, opens a session and sets the identity cookie.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		inlineError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), form.Email)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		log.Printf("Error looking up user: %v", err)
		inlineError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if user == nil || !auth.VerifyPassword(form.Password, user.PasswordHash) {
		inlineError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	session, err := h.store.CreateSession(c.Request.Context(), user.ID, h.cfg.Session.TTL)
	if err != nil {
		log.Printf("Error creating session: %v", err)
		inlineError(c, http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.setSessionCookie(c, session.Token, int(h.cfg.Session.TTL.Seconds()))
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout drops the session if there is one and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Session.CookieName); err == nil && token != "" {
		if err := h.store.DeleteSession(c.Request.Context(), token); err != nil {
			log.Printf("Error deleting session: %v", err)
		}
	}
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, value, maxAge, "/", "", h.cfg.Server.CookieSecure, true)
}
