package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// FileUpload is the transport-agnostic shape of an uploaded file. The
// controller extracts it from the multipart form so services never touch
// the HTTP layer.
type FileUpload struct {
	Name   string
	Size   int64
	Reader io.Reader
}

type CreateNoteRequest struct {
	Title      string    `form:"title" validate:"required"`
	Content    string    `form:"content" validate:"required"`
	CategoryId uuid.UUID `form:"category_id" validate:"required"`
	Image      *FileUpload
}

type UpdateNoteRequest struct {
	Id         uuid.UUID
	Title      string     `json:"title" validate:"required"`
	Content    string     `json:"content" validate:"required"`
	CategoryId *uuid.UUID `json:"category_id"`
}

type UpdateNoteImageRequest struct {
	Id    uuid.UUID
	Image *FileUpload
}

type NoteResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	ImagePath  *string    `json:"image_path"`
	CategoryId uuid.UUID  `json:"category_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
