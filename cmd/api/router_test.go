package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookstore/internal/config"
	"bookstore/internal/domains/author"
	"bookstore/internal/domains/book/model"
	"bookstore/internal/domains/user"
	userService "bookstore/internal/domains/user/service"
	"bookstore/pkg/container"
)

// ----------------------------------------
// in-memory repositories
// ----------------------------------------

type memUsers struct {
	mu    sync.Mutex
	users map[string]*user.User
	roles map[uuid.UUID][]string
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*user.User{}, roles: map[uuid.UUID][]string{}}
}

func (m *memUsers) CreateWithRole(ctx context.Context, u *user.User, role user.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.NormalizedEmail]; ok {
		return user.ErrEmailAlreadyExists
	}
	cp := *u
	m.users[u.NormalizedEmail] = &cp
	m.roles[u.ID] = []string{string(role)}
	return nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[user.NormalizeEmail(email)]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[user.NormalizeEmail(email)]
	return ok, nil
}

func (m *memUsers) GetRoles(ctx context.Context, id uuid.UUID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roles[id], nil
}

func (m *memUsers) GetClaims(ctx context.Context, id uuid.UUID) ([]user.Claim, error) {
	return nil, nil
}

type memAuthors struct {
	mu      sync.Mutex
	nextID  int
	authors map[int]author.Author
}

func (m *memAuthors) List(ctx context.Context) ([]author.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]author.Author, 0, len(m.authors))
	for i := 1; i <= m.nextID; i++ {
		if a, ok := m.authors[i]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAuthors) GetByID(ctx context.Context, id int) (*author.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (m *memAuthors) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	m.authors[a.ID] = *a
	return a, nil
}

func (m *memAuthors) Update(ctx context.Context, a *author.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.authors[a.ID]; !ok {
		return author.ErrNoRowsAffected
	}
	m.authors[a.ID] = *a
	return nil
}

func (m *memAuthors) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(m.authors, id)
	return nil
}

func (m *memAuthors) Exists(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.authors[id]
	return ok, nil
}

type memBooks struct {
	mu      sync.Mutex
	nextID  int
	books   map[int]model.Book
	authors *memAuthors
}

func (m *memBooks) withAuthor(b model.Book) (*model.BookWithAuthor, error) {
	a, err := m.authors.GetByID(context.Background(), b.AuthorID)
	if err != nil {
		return nil, model.ErrAuthorNotFound
	}
	return &model.BookWithAuthor{Book: b, AuthorName: model.AuthorFullName(a.FirstName, a.LastName)}, nil
}

func (m *memBooks) ListWithAuthors(ctx context.Context) ([]model.BookWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.BookWithAuthor, 0, len(m.books))
	for i := 1; i <= m.nextID; i++ {
		if b, ok := m.books[i]; ok {
			bw, err := m.withAuthor(b)
			if err != nil {
				return nil, err
			}
			out = append(out, *bw)
		}
	}
	return out, nil
}

func (m *memBooks) GetWithAuthor(ctx context.Context, id int) (*model.BookWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return m.withAuthor(b)
}

func (m *memBooks) GetByID(ctx context.Context, id int) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &b, nil
}

func (m *memBooks) Create(ctx context.Context, b *model.Book) (*model.BookWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.books {
		if existing.ISBN == b.ISBN {
			return nil, model.ErrISBNAlreadyExists
		}
	}
	m.nextID++
	b.ID = m.nextID
	bw, err := m.withAuthor(*b)
	if err != nil {
		m.nextID--
		return nil, err
	}
	m.books[b.ID] = *b
	return bw, nil
}

func (m *memBooks) Update(ctx context.Context, b *model.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; !ok {
		return model.ErrNoRowsAffected
	}
	m.books[b.ID] = *b
	return nil
}

func (m *memBooks) Delete(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *memBooks) Exists(ctx context.Context, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.books[id]
	return ok, nil
}

// ----------------------------------------
// helpers
// ----------------------------------------

const (
	adminEmail    = "admin@bookstore.com"
	adminPassword = "Adm1n!pass"
)

func newTestApp(t *testing.T) (*gin.Engine, *container.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Environment: "test", Version: "test"},
		JWT: config.JWTConfig{
			Secret:   "0123456789abcdef0123456789abcdef",
			Issuer:   "BookStoreAPI",
			Audience: "BookStoreApiClient",
			Duration: time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Seed:     config.SeedConfig{AdminEmail: adminEmail, AdminPassword: adminPassword},
	}

	authors := &memAuthors{authors: map[int]author.Author{}}
	c := container.New(cfg, container.Repositories{
		Author: authors,
		Book:   &memBooks{books: map[int]model.Book{}, authors: authors},
		User:   newMemUsers(),
	}, nil)

	require.NoError(t, userService.Bootstrap(context.Background(), c.UserService, cfg.Seed))
	return SetupRouter(c), c
}

func call(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()
	w := call(r, http.MethodPost, "/api/auth/login", "", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp user.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// ----------------------------------------
// scenarios
// ----------------------------------------

func TestEndToEnd_RegisterLoginAndBookAuthorization(t *testing.T) {
	r, c := newTestApp(t)

	// register asks for Administrator but is always given User
	w := call(r, http.MethodPost, "/api/auth/register", "",
		`{"email":"reader@example.com","password":"Passw0rd!","firstName":"Rea","lastName":"Der","role":"Administrator"}`)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	userToken := login(t, r, "reader@example.com", "Passw0rd!")
	claims, err := c.JWTManager.Validate(userToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"User"}, claims.Roles)
	assert.Equal(t, "reader@example.com", claims.Username)

	// authors need no token
	w = call(r, http.MethodPost, "/api/authors", "", `{"firstName":"Frank","lastName":"Herbert"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/authors/1", w.Header().Get("Location"))

	book := `{"title":"Dune","year":1965,"isbn":"978-0441013593","price":"9.99","authorId":1}`

	w = call(r, http.MethodGet, "/api/books", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodGet, "/api/books", userToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = call(r, http.MethodPost, "/api/books", userToken, book)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken := login(t, r, adminEmail, adminPassword)

	w = call(r, http.MethodPost, "/api/books", adminToken, book)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/books/1", w.Header().Get("Location"))

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Frank Herbert", created["authorName"])
	assert.Equal(t, "978-0441013593", created["isbn"])

	w = call(r, http.MethodPost, "/api/books", adminToken, book)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodGet, "/api/books/1", userToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodGet, "/api/books/99", userToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = call(r, http.MethodDelete, "/api/books/1", userToken, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(r, http.MethodDelete, "/api/books/1", adminToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEndToEnd_LoginFailuresAreIndistinguishable(t *testing.T) {
	r, _ := newTestApp(t)

	unknown := call(r, http.MethodPost, "/api/auth/login", "", `{"email":"nobody@example.com","password":"Whatever1!"}`)
	wrong := call(r, http.MethodPost, "/api/auth/login", "", fmt.Sprintf(`{"email":%q,"password":"Wrong1!pass"}`, adminEmail))

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
}

func TestEndToEnd_DuplicateRegistration(t *testing.T) {
	r, _ := newTestApp(t)

	w := call(r, http.MethodPost, "/api/auth/register", "",
		fmt.Sprintf(`{"email":%q,"password":"Passw0rd!","firstName":"A","lastName":"B","role":"User"}`, strings.ToUpper(adminEmail)))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"email"`)
}

func TestEndToEnd_UpdateIDMismatch(t *testing.T) {
	r, _ := newTestApp(t)
	adminToken := login(t, r, adminEmail, adminPassword)

	w := call(r, http.MethodPut, "/api/books/5", adminToken,
		`{"id":6,"title":"X","isbn":"1","price":"1.00","authorId":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodPut, "/api/authors/5", "", `{"id":6,"firstName":"A","lastName":"B"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestApp(t)

	w := call(r, http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"not configured"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
