package service

import (
	"context"
	"testing"
	"time"

	"notepad-api/internal/dto"
	"notepad-api/internal/entity"
	"notepad-api/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(store *fakeDataStore, userId uuid.UUID, name string) *entity.Category {
	category := &entity.Category{
		Id:        uuid.New(),
		Name:      name,
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	store.categories[category.Id] = category
	return category
}

func TestCategoryService_Create(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	userId := uuid.New()

	resp, err := svc.Create(context.Background(), userId, &dto.CreateCategoryRequest{Name: "Work"})
	require.NoError(t, err)
	assert.Equal(t, "Work", resp.Name)
	assert.NotEqual(t, uuid.Nil, resp.Id)
	assert.Nil(t, resp.UpdatedAt)

	stored := store.categories[resp.Id]
	require.NotNil(t, stored)
	assert.Equal(t, userId, stored.UserId)
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	userId := uuid.New()
	seedCategory(store, userId, "Work")

	_, err := svc.Create(context.Background(), userId, &dto.CreateCategoryRequest{Name: "Work"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	appErr, ok := apperror.From(err)
	require.True(t, ok)
	assert.Equal(t, "category_name_taken", appErr.Reason)
	assert.Len(t, store.categories, 1)
}

func TestCategoryService_Create_SameNameDifferentOwner(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	seedCategory(store, uuid.New(), "Work")

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateCategoryRequest{Name: "Work"})
	require.NoError(t, err)
	assert.Len(t, store.categories, 2)
}

func TestCategoryService_Create_NameIsCaseSensitive(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	userId := uuid.New()
	seedCategory(store, userId, "Work")

	_, err := svc.Create(context.Background(), userId, &dto.CreateCategoryRequest{Name: "work"})
	require.NoError(t, err)
	assert.Len(t, store.categories, 2)
}

func TestCategoryService_GetById(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	userId := uuid.New()
	category := seedCategory(store, userId, "Work")

	resp, err := svc.GetById(context.Background(), userId, category.Id)
	require.NoError(t, err)
	assert.Equal(t, category.Id, resp.Id)
	assert.Equal(t, "Work", resp.Name)
}

func TestCategoryService_GetById_OtherOwnerLooksMissing(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	category := seedCategory(store, uuid.New(), "Work")

	_, err := svc.GetById(context.Background(), uuid.New(), category.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCategoryService_List_OnlyOwnRows(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	userId := uuid.New()
	seedCategory(store, userId, "Work")
	seedCategory(store, userId, "Personal")
	seedCategory(store, uuid.New(), "Other")

	result, err := svc.List(context.Background(), userId)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestCategoryService_List_Empty(t *testing.T) {
	factory, _ := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})

	result, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestCategoryService_Update(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	userId := uuid.New()
	category := seedCategory(store, userId, "Work")

	resp, err := svc.Update(context.Background(), userId, &dto.UpdateCategoryRequest{Id: category.Id, Name: "Projects"})
	require.NoError(t, err)
	assert.Equal(t, "Projects", resp.Name)
	require.NotNil(t, resp.UpdatedAt)

	assert.Equal(t, "Projects", store.categories[category.Id].Name)
}

func TestCategoryService_Update_NotFound(t *testing.T) {
	factory, _ := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateCategoryRequest{Id: uuid.New(), Name: "Projects"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCategoryService_Update_OtherOwnerLooksMissing(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	category := seedCategory(store, uuid.New(), "Work")

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateCategoryRequest{Id: category.Id, Name: "Projects"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Equal(t, "Work", store.categories[category.Id].Name)
}

func TestCategoryService_Delete(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	userId := uuid.New()
	category := seedCategory(store, userId, "Work")

	require.NoError(t, svc.Delete(context.Background(), userId, category.Id))
	assert.Empty(t, store.categories)
}

func TestCategoryService_Delete_AbsentIsNoOp(t *testing.T) {
	factory, _ := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})

	assert.NoError(t, svc.Delete(context.Background(), uuid.New(), uuid.New()))
}

func TestCategoryService_Delete_TwiceIsNoOp(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	userId := uuid.New()
	category := seedCategory(store, userId, "Work")

	require.NoError(t, svc.Delete(context.Background(), userId, category.Id))
	assert.NoError(t, svc.Delete(context.Background(), userId, category.Id))
}

func TestCategoryService_Delete_BlockedByNotes(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewCategoryService(factory, nopLogger{})
	userId := uuid.New()
	category := seedCategory(store, userId, "Work")
	note := &entity.Note{
		Id:         uuid.New(),
		Title:      "todo",
		Content:    "things",
		CategoryId: category.Id,
		UserId:     userId,
		CreatedAt:  time.Now(),
	}
	store.notes[note.Id] = note

	err := svc.Delete(context.Background(), userId, category.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	appErr, ok := apperror.From(err)
	require.True(t, ok)
	assert.Equal(t, "category_in_use", appErr.Reason)

	// Nothing was removed.
	assert.Len(t, store.categories, 1)
	assert.Len(t, store.notes, 1)
}
