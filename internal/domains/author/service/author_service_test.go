package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore/internal/domains/author"
)

type fakeRepo struct {
	rows       map[int]author.Author
	nextID     int
	updateErr  error
	existsErr  error
	getCalls   int
	existCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int]author.Author{}, nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context) ([]author.Author, error) {
	out := make([]author.Author, 0, len(f.rows))
	for i := 1; i < f.nextID; i++ {
		if a, ok := f.rows[i]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int) (*author.Author, error) {
	f.getCalls++
	a, ok := f.rows[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (f *fakeRepo) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	a.ID = f.nextID
	f.nextID++
	f.rows[a.ID] = *a
	return a, nil
}

func (f *fakeRepo) Update(ctx context.Context, a *author.Author) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.rows[a.ID]; !ok {
		return author.ErrNoRowsAffected
	}
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.rows[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) Exists(ctx context.Context, id int) (bool, error) {
	f.existCalls++
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.rows[id]
	return ok, nil
}

// vanishingRepo deletes the row right after it has been loaded.
type vanishingRepo struct{ *fakeRepo }

func (v vanishingRepo) GetByID(ctx context.Context, id int) (*author.Author, error) {
	a, err := v.fakeRepo.GetByID(ctx, id)
	delete(v.rows, id)
	return a, err
}

func TestCreateAndGet(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthorService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &author.CreateAuthorRequest{FirstName: "Italo", LastName: "Calvino"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calvino", got.LastName)

	_, err = svc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestUpdate_IDMismatchDoesNotTouchStorage(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthorService(repo)

	err := svc.Update(context.Background(), 1, &author.UpdateAuthorRequest{ID: 2, FirstName: "a", LastName: "b"})
	assert.ErrorIs(t, err, author.ErrIDMismatch)
	assert.Zero(t, repo.getCalls)
}

func TestUpdate_OverwritesFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthorService(repo)
	ctx := context.Background()

	bio := "old"
	_, err := svc.Create(ctx, &author.CreateAuthorRequest{FirstName: "A", LastName: "B", Bio: &bio})
	require.NoError(t, err)

	err = svc.Update(ctx, 1, &author.UpdateAuthorRequest{ID: 1, FirstName: "C", LastName: "D"})
	require.NoError(t, err)

	got := repo.rows[1]
	assert.Equal(t, "C", got.FirstName)
	assert.Equal(t, "D", got.LastName)
	assert.Nil(t, got.Bio)
}

func TestUpdate_Missing(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())
	err := svc.Update(context.Background(), 4, &author.UpdateAuthorRequest{ID: 4, FirstName: "a", LastName: "b"})
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestUpdate_ConcurrentDeleteReportsNotFound(t *testing.T) {
	base := newFakeRepo()
	base.rows[1] = author.Author{ID: 1, FirstName: "A", LastName: "B"}
	base.nextID = 2
	svc := NewAuthorService(vanishingRepo{base})

	err := svc.Update(context.Background(), 1, &author.UpdateAuthorRequest{ID: 1, FirstName: "X", LastName: "Y"})
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	assert.Equal(t, 1, base.existCalls)
}

func TestUpdate_NoRowsButStillExistsIsUnexpected(t *testing.T) {
	repo := newFakeRepo()
	repo.rows[1] = author.Author{ID: 1, FirstName: "A", LastName: "B"}
	repo.updateErr = author.ErrNoRowsAffected
	svc := NewAuthorService(repo)

	err := svc.Update(context.Background(), 1, &author.UpdateAuthorRequest{ID: 1, FirstName: "X", LastName: "Y"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, author.ErrAuthorNotFound)
	assert.Equal(t, 500, author.ToHTTPStatus(err))
}

func TestUpdate_StorageFailurePassesThrough(t *testing.T) {
	repo := newFakeRepo()
	repo.rows[1] = author.Author{ID: 1}
	boom := errors.New("boom")
	repo.updateErr = boom

	err := NewAuthorService(repo).Update(context.Background(), 1, &author.UpdateAuthorRequest{ID: 1, FirstName: "x", LastName: "y"})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, repo.existCalls)
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthorService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, &author.CreateAuthorRequest{FirstName: "A", LastName: "B"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 1), author.ErrAuthorNotFound)
}
