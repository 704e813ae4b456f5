// Package handler serves the server-rendered UI pages.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore/internal/domains/book/model"
	"bookstore/internal/domains/user"
	"bookstore/internal/ui/apiclient"
	"bookstore/internal/ui/authentication"
	"bookstore/internal/ui/authstate"
	"bookstore/internal/ui/tokenstore"
)

const (
	msgInvalidLogin = "Invalid email or password."
	msgUnavailable  = "The book store is unavailable right now. Please try again later."
)

type PageHandler struct {
	auth   *authentication.Service
	state  *authstate.Provider
	tokens tokenstore.Store
	api    *apiclient.Client
}

func NewPageHandler(auth *authentication.Service, state *authstate.Provider, tokens tokenstore.Store, api *apiclient.Client) *PageHandler {
	return &PageHandler{auth: auth, state: state, tokens: tokens, api: api}
}

// RegisterRoutes mounts the pages on r.
func (h *PageHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)
}

type page struct {
	Title      string
	State      authstate.State
	Error      string
	Fields     map[string]string
	Books      []model.BookResponse
	Email      string
	Registered bool
	Form       user.RegisterRequest
}

func (h *PageHandler) currentState(c *gin.Context) authstate.State {
	state, err := h.state.State(c.Request.Context(), sessionID(c))
	if err != nil {
		log.Error().Err(err).Msg("[UI] failed to load authentication state")
		return authstate.Anonymous
	}
	return state
}

// Home - GET /
func (h *PageHandler) Home(c *gin.Context) {
	p := page{Title: "Home", State: h.currentState(c), Fields: map[string]string{}}

	if p.State.Authenticated {
		books, err := h.listBooks(c)
		switch {
		case err == nil:
			p.Books = books
		case errors.Is(err, apiclient.ErrUnauthorized):
			// the API no longer accepts the token
			if err := h.auth.Logout(c.Request.Context(), sessionID(c)); err != nil {
				log.Error().Err(err).Msg("[UI] failed to clear rejected token")
			}
			p.State = authstate.Anonymous
		default:
			log.Error().Err(err).Msg("[UI] failed to load books")
			p.Error = msgUnavailable
		}
	}

	c.HTML(http.StatusOK, "home.html", p)
}

func (h *PageHandler) listBooks(c *gin.Context) ([]model.BookResponse, error) {
	token, err := h.tokens.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		if errors.Is(err, tokenstore.ErrNotFound) {
			return nil, apiclient.ErrUnauthorized
		}
		return nil, err
	}
	return h.api.ListBooks(c.Request.Context(), token)
}

// LoginForm - GET /login
func (h *PageHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", page{
		Title:      "Login",
		State:      h.currentState(c),
		Fields:     map[string]string{},
		Registered: c.Query("registered") == "1",
	})
}

// Login - POST /login
func (h *PageHandler) Login(c *gin.Context) {
	req := user.LoginRequest{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
	p := page{Title: "Login", Email: req.Email, Fields: map[string]string{}}

	if _, err := h.auth.Authenticate(c.Request.Context(), sessionID(c), req); err != nil {
		status := h.formError(&p, err)
		if errors.Is(err, apiclient.ErrUnauthorized) {
			p.Error = msgInvalidLogin
		}
		c.HTML(status, "login.html", p)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Logout - POST /logout
func (h *PageHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), sessionID(c)); err != nil {
		log.Error().Err(err).Msg("[UI] logout failed")
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// RegisterForm - GET /register
func (h *PageHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", page{
		Title:  "Register",
		State:  h.currentState(c),
		Fields: map[string]string{},
	})
}

// Register - POST /register
func (h *PageHandler) Register(c *gin.Context) {
	req := user.RegisterRequest{
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Role:      string(user.RoleUser),
	}

	if err := h.api.Register(c.Request.Context(), req); err != nil {
		req.Password = ""
		p := page{Title: "Register", Form: req, Fields: map[string]string{}}
		c.HTML(h.formError(&p, err), "register.html", p)
		return
	}

	c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

// formError copies API validation details onto p and returns the status to render with.
func (h *PageHandler) formError(p *page, err error) int {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
		for field, msg := range apiErr.Details {
			p.Fields[field] = msg
		}
		p.Error = apiErr.Message
		return apiErr.StatusCode
	}

	log.Error().Err(err).Msg("[UI] API call failed")
	p.Error = msgUnavailable
	return http.StatusBadGateway
}
