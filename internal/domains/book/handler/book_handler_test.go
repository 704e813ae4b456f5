package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/domains/book/model"
	"bookstore/internal/shared/response"
)

type stubService struct {
	books []model.BookWithAuthor
	err   error
}

func (s *stubService) ListBooks(ctx context.Context) ([]model.BookWithAuthor, error) {
	return s.books, s.err
}

func (s *stubService) GetBookDetail(ctx context.Context, id int) (*model.BookWithAuthor, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.books {
		if s.books[i].ID == id {
			return &s.books[i], nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (s *stubService) CreateBook(ctx context.Context, req *model.CreateBookRequest) (*model.BookWithAuthor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.BookWithAuthor{Book: *req.ToEntity(), AuthorName: "Italo Calvino"}, nil
}

func (s *stubService) UpdateBook(ctx context.Context, id int, req *model.UpdateBookRequest) error {
	if s.err != nil {
		return s.err
	}
	if req.ID != id {
		return model.ErrIDMismatch
	}
	return nil
}

func (s *stubService) DeleteBook(ctx context.Context, id int) error {
	return s.err
}

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	g := r.Group("/api/books")
	g.GET("", h.ListBooks)
	g.GET("/:id", h.GetBookDetail)
	g.POST("", h.CreateBook)
	g.PUT("/:id", h.UpdateBook)
	g.DELETE("/:id", h.DeleteBook)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBook() model.BookWithAuthor {
	year := 1957
	summary := "A boy climbs a tree"
	return model.BookWithAuthor{
		Book: model.Book{
			ID: 1, Title: "Il barone rampante", Year: &year, ISBN: "978-1",
			Price: decimal.RequireFromString("12.5"), Summary: &summary, AuthorID: 3,
		},
		AuthorName: "Italo Calvino",
	}
}

func TestListBooks(t *testing.T) {
	w := serve(newTestRouter(&stubService{books: []model.BookWithAuthor{sampleBook()}}), http.MethodGet, "/api/books", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"title":"Il barone rampante","image":null,"price":12.5,"authorId":3,"authorName":"Italo Calvino"}]`, w.Body.String())
}

func TestGetBookDetail(t *testing.T) {
	r := newTestRouter(&stubService{books: []model.BookWithAuthor{sampleBook()}})

	w := serve(r, http.MethodGet, "/api/books/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"Il barone rampante","image":null,"price":12.5,"authorId":3,"authorName":"Italo Calvino","year":1957,"isbn":"978-1","summary":"A boy climbs a tree"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/api/books/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCreateBook(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := serve(r, http.MethodPost, "/api/books", `{"title":"T","isbn":"978-9","price":9.99,"authorId":3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/books/0", w.Header().Get("Location"))

	var got model.BookDetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Italo Calvino", got.AuthorName)
	assert.True(t, decimal.RequireFromString("9.99").Equal(got.Price))
}

func TestCreateBook_Validation(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := serve(r, http.MethodPost, "/api/books", `{"title":"","isbn":"x","price":-1,"authorId":0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error.Details, "title")
	assert.Contains(t, body.Error.Details, "price")
	assert.Contains(t, body.Error.Details, "authorId")
}

func TestCreateBook_DomainErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantField  string
	}{
		{model.ErrISBNAlreadyExists, http.StatusConflict, ""},
		{model.ErrAuthorNotFound, http.StatusBadRequest, model.FieldAuthorID},
		{model.ErrImageStorageUnavailable, http.StatusBadRequest, model.FieldImageData},
		{errors.New("connection refused"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := serve(newTestRouter(&stubService{err: tt.err}), http.MethodPost, "/api/books",
				`{"title":"T","isbn":"978-9","price":1,"authorId":3}`)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			if tt.wantField != "" {
				details, ok := body.Error.Details.(map[string]interface{})
				require.True(t, ok)
				assert.Contains(t, details, tt.wantField)
			}
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestUpdateBook(t *testing.T) {
	r := newTestRouter(&stubService{})
	body := `{"id":1,"title":"T","isbn":"978-9","price":1,"authorId":3}`

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPut, "/api/books/1", body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPut, "/api/books/2", body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPut, "/api/books/x", body).Code)
}

func TestDeleteBook(t *testing.T) {
	svc := &stubService{}
	r := newTestRouter(svc)

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, "/api/books/1", "").Code)

	svc.err = model.ErrBookNotFound
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodDelete, "/api/books/1", "").Code)
}
