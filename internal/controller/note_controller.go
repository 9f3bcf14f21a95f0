package controller

import (
	"mime/multipart"

	"notepad-api/internal/dto"
	"notepad-api/internal/pkg/apperror"
	"notepad-api/internal/pkg/serverutils"
	"notepad-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	UpdateDetails(ctx *fiber.Ctx) error
	UpdateImage(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/note/v1")
	h.Use(authMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.UpdateDetails)
	h.Put(":id/image", c.UpdateImage)
	h.Delete(":id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	titleFilter := ctx.Query("title", "")

	var categoryId *uuid.UUID
	if raw := ctx.Query("category_id", ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperror.Validation("invalid_category_id", "category_id is not a valid uuid")
		}
		categoryId = &id
	}

	res, err := c.noteService.List(ctx.Context(), userId, titleFilter, categoryId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.noteService.GetById(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	categoryId, err := uuid.Parse(ctx.FormValue("category_id"))
	if err != nil {
		return apperror.Validation("invalid_category_id", "category_id is not a valid uuid")
	}

	req := dto.CreateNoteRequest{
		Title:      ctx.FormValue("title"),
		Content:    ctx.FormValue("content"),
		CategoryId: categoryId,
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	upload, file, err := openUpload(ctx)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
		req.Image = upload
	}

	res, err := c.noteService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) UpdateDetails(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.UpdateDetails(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) UpdateImage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	req := dto.UpdateNoteImageRequest{Id: id}

	upload, file, err := openUpload(ctx)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
		req.Image = upload
	}

	res, err := c.noteService.UpdateImage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note image", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	if err := c.noteService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

// openUpload extracts the optional "image" part of a multipart form. A
// request without one is fine; the caller gets a nil file.
func openUpload(ctx *fiber.Ctx) (*dto.FileUpload, multipart.File, error) {
	fh, err := ctx.FormFile("image")
	if err != nil {
		return nil, nil, nil
	}

	file, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	return &dto.FileUpload{
		Name:   fh.Filename,
		Size:   fh.Size,
		Reader: file,
	}, file, nil
}
