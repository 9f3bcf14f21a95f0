package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"notepad-api/internal/entity"
	"notepad-api/internal/repository/contract"
	"notepad-api/internal/repository/specification"
	"notepad-api/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes for the repository contracts. They interpret the same
// specification values the real GORM implementations do, so service tests
// exercise real filtering behavior without a database.

type fakeDataStore struct {
	users      map[uuid.UUID]*entity.User
	categories map[uuid.UUID]*entity.Category
	notes      map[uuid.UUID]*entity.Note
}

func newFakeDataStore() *fakeDataStore {
	return &fakeDataStore{
		users:      make(map[uuid.UUID]*entity.User),
		categories: make(map[uuid.UUID]*entity.Category),
		notes:      make(map[uuid.UUID]*entity.Note),
	}
}

type fakeUnitOfWork struct {
	store *fakeDataStore

	noteErr     error
	categoryErr error
	userErr     error
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepository{store: u.store, err: u.userErr}
}

func (u *fakeUnitOfWork) CategoryRepository() contract.CategoryRepository {
	return &fakeCategoryRepository{store: u.store, err: u.categoryErr}
}

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository {
	return &fakeNoteRepository{store: u.store, err: u.noteErr}
}

type fakeRepositoryFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newFakeFactory() (*fakeRepositoryFactory, *fakeDataStore) {
	store := newFakeDataStore()
	uow := &fakeUnitOfWork{store: store}
	return &fakeRepositoryFactory{uow: uow}, store
}

// --- note repository ---

type fakeNoteRepository struct {
	store *fakeDataStore
	err   error
}

func matchNote(n *entity.Note, specs ...specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if n.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if n.UserId != sp.UserID {
				return false
			}
		case specification.ByCategoryID:
			if n.CategoryId != sp.CategoryID {
				return false
			}
		case specification.TitleContains:
			if !strings.Contains(strings.ToLower(n.Title), strings.ToLower(sp.Query)) {
				return false
			}
		}
	}
	return true
}

func (r *fakeNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	if r.err != nil {
		return r.err
	}
	cp := *note
	r.store.notes[note.Id] = &cp
	return nil
}

func (r *fakeNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	if r.err != nil {
		return r.err
	}
	cp := *note
	r.store.notes[note.Id] = &cp
	return nil
}

func (r *fakeNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	delete(r.store.notes, id)
	return nil
}

func (r *fakeNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, n := range r.store.notes {
		if matchNote(n, specs...) {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []*entity.Note
	for _, n := range r.store.notes {
		if matchNote(n, specs...) {
			cp := *n
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeNoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, err := r.FindAll(ctx, specs...)
	return int64(len(notes)), err
}

// --- category repository ---

type fakeCategoryRepository struct {
	store *fakeDataStore
	err   error
}

func matchCategory(c *entity.Category, specs ...specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if c.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if c.UserId != sp.UserID {
				return false
			}
		case specification.ByName:
			if c.Name != sp.Name {
				return false
			}
		}
	}
	return true
}

func (r *fakeCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if r.err != nil {
		return r.err
	}
	// Unique (name, user_id) index behavior.
	for _, c := range r.store.categories {
		if c.Name == category.Name && c.UserId == category.UserId {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *category
	r.store.categories[category.Id] = &cp
	return nil
}

func (r *fakeCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	if r.err != nil {
		return r.err
	}
	cp := *category
	r.store.categories[category.Id] = &cp
	return nil
}

func (r *fakeCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	// Restrict FK behavior: notes block the delete.
	for _, n := range r.store.notes {
		if n.CategoryId == id {
			return gorm.ErrForeignKeyViolated
		}
	}
	delete(r.store.categories, id)
	return nil
}

func (r *fakeCategoryRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, c := range r.store.categories {
		if matchCategory(c, specs...) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []*entity.Category
	for _, c := range r.store.categories {
		if matchCategory(c, specs...) {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeCategoryRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	categories, err := r.FindAll(ctx, specs...)
	return int64(len(categories)), err
}

// --- user repository ---

type fakeUserRepository struct {
	store *fakeDataStore
	err   error
}

func matchUser(u *entity.User, specs ...specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != sp.Email {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *user
	r.store.users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.store.users {
		if matchUser(u, specs...) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var count int64
	for _, u := range r.store.users {
		if matchUser(u, specs...) {
			count++
		}
	}
	return count, nil
}

// --- image store ---

// fakeImageStore records the order of Save/Delete calls so tests can assert
// replacement semantics.
type fakeImageStore struct {
	ops     []string
	saveErr error
	nextId  int
}

func (f *fakeImageStore) Save(r io.Reader, originalName string, size int64) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.nextId++
	path := fmt.Sprintf("uploads/%d.png", f.nextId)
	f.ops = append(f.ops, "save:"+path)
	return path, nil
}

func (f *fakeImageStore) Delete(path string) error {
	f.ops = append(f.ops, "delete:"+path)
	return nil
}

func (f *fakeImageStore) Read(path string) ([]byte, error) {
	return nil, nil
}

func (f *fakeImageStore) saves() []string {
	var out []string
	for _, op := range f.ops {
		if strings.HasPrefix(op, "save:") {
			out = append(out, strings.TrimPrefix(op, "save:"))
		}
	}
	return out
}

func (f *fakeImageStore) deletes() []string {
	var out []string
	for _, op := range f.ops {
		if strings.HasPrefix(op, "delete:") {
			out = append(out, strings.TrimPrefix(op, "delete:"))
		}
	}
	return out
}

// --- logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
