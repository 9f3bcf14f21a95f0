package service

import (
	"context"
	"errors"
	"time"

	"notepad-api/internal/dto"
	"notepad-api/internal/entity"
	"notepad-api/internal/pkg/apperror"
	"notepad-api/internal/pkg/filestore"
	"notepad-api/internal/pkg/logger"
	"notepad-api/internal/repository/specification"
	"notepad-api/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID, titleFilter string, categoryId *uuid.UUID) ([]*dto.NoteResponse, error)
	GetById(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	UpdateDetails(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	UpdateImage(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteImageRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	images     filestore.ImageStore
	log        logger.ILogger
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, images filestore.ImageStore, log logger.ILogger) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		images:     images,
		log:        log,
	}
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, titleFilter string, categoryId *uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if titleFilter != "" {
		specs = append(specs, specification.TitleContains{Query: titleFilter})
	}
	if categoryId != nil {
		specs = append(specs, specification.ByCategoryID{CategoryID: *categoryId})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, noteToResponse(note))
	}
	return result, nil
}

func (s *noteService) GetById(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note_not_found", "note not found")
	}

	return noteToResponse(note), nil
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The referenced category must exist and belong to the caller.
	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: req.CategoryId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.Validation("category_not_found", "category does not exist")
	}

	note := entity.Note{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		CategoryId: req.CategoryId,
		UserId:     userId,
		CreatedAt:  time.Now(),
	}

	// Save the image before the row so a failed save aborts the whole create.
	if req.Image != nil {
		path, err := s.images.Save(req.Image.Reader, req.Image.Name, req.Image.Size)
		if err != nil {
			return nil, err
		}
		note.ImagePath = &path
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		if note.ImagePath != nil {
			// Best effort: don't leave the just-saved file orphaned.
			if delErr := s.images.Delete(*note.ImagePath); delErr != nil {
				s.log.Warn("note", "failed to clean up image after create failure", map[string]interface{}{
					"path":  *note.ImagePath,
					"error": delErr.Error(),
				})
			}
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.Validation("category_not_found", "category does not exist")
		}
		return nil, err
	}

	s.log.Info("note", "note created", map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
	})

	return noteToResponse(&note), nil
}

func (s *noteService) UpdateDetails(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note_not_found", "note not found")
	}

	if req.CategoryId != nil {
		category, err := uow.CategoryRepository().FindOne(ctx,
			specification.ByID{ID: *req.CategoryId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.Validation("category_not_found", "category does not exist")
		}
		note.CategoryId = *req.CategoryId
	}

	now := time.Now()
	note.Title = req.Title
	note.Content = req.Content
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return noteToResponse(note), nil
}

func (s *noteService) UpdateImage(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteImageRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note_not_found", "note not found")
	}

	// No incoming image means the existing path stays untouched.
	if req.Image == nil {
		return noteToResponse(note), nil
	}

	// Replacement: the old file goes before the new one is written.
	if note.ImagePath != nil && *note.ImagePath != "" {
		if err := s.images.Delete(*note.ImagePath); err != nil {
			return nil, err
		}
	}

	path, err := s.images.Save(req.Image.Reader, req.Image.Name, req.Image.Size)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note.ImagePath = &path
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.log.Info("note", "note image updated", map[string]interface{}{
		"note_id": note.Id,
		"path":    path,
	})

	return noteToResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return nil
	}

	// The row goes; the image file (if any) is intentionally left behind.
	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("note", "note deleted", map[string]interface{}{
		"note_id": id,
		"user_id": userId,
	})
	return nil
}

func noteToResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:         n.Id,
		Title:      n.Title,
		Content:    n.Content,
		ImagePath:  n.ImagePath,
		CategoryId: n.CategoryId,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
