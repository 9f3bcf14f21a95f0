package service

import (
	"context"
	"errors"
	"time"

	"notepad-api/internal/dto"
	"notepad-api/internal/entity"
	"notepad-api/internal/pkg/apperror"
	"notepad-api/internal/pkg/logger"
	"notepad-api/internal/repository/specification"
	"notepad-api/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ICategoryService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetById(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.CategoryResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type categoryService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewCategoryService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ICategoryService {
	return &categoryService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *categoryService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Case-sensitive duplicate check, scoped to the owner.
	existing, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByName{Name: req.Name},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.Warn("category", "duplicate category name rejected", map[string]interface{}{
			"name":    req.Name,
			"user_id": userId,
		})
		return nil, apperror.Conflict("category_name_taken", "a category with this name already exists")
	}

	category := entity.Category{
		Id:        uuid.New(),
		Name:      req.Name,
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	if err := uow.CategoryRepository().Create(ctx, &category); err != nil {
		// The unique index backstops a concurrent create between the check
		// above and this insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("category_name_taken", "a category with this name already exists")
		}
		return nil, err
	}

	s.log.Info("category", "category created", map[string]interface{}{
		"category_id": category.Id,
		"user_id":     userId,
	})

	return categoryToResponse(&category), nil
}

func (s *categoryService) GetById(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NotFound("category_not_found", "category not found")
	}

	return categoryToResponse(category), nil
}

func (s *categoryService) List(ctx context.Context, userId uuid.UUID) ([]*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	categories, err := uow.CategoryRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		result = append(result, categoryToResponse(category))
	}
	return result, nil
}

func (s *categoryService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NotFound("category_not_found", "category not found")
	}

	now := time.Now()
	category.Name = req.Name
	category.UpdatedAt = &now

	// Rename does not re-check name uniqueness; the unique index still
	// rejects an actual duplicate at the store.
	if err := uow.CategoryRepository().Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("category_name_taken", "a category with this name already exists")
		}
		return nil, err
	}

	return categoryToResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if category == nil {
		return nil
	}

	if err := uow.CategoryRepository().Delete(ctx, id); err != nil {
		// Restrict FK: the category cannot go while notes reference it.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperror.Conflict("category_in_use", "category still has notes referencing it")
		}
		return err
	}

	s.log.Info("category", "category deleted", map[string]interface{}{
		"category_id": id,
		"user_id":     userId,
	})
	return nil
}

func categoryToResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		Id:        c.Id,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
