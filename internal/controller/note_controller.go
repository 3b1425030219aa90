package controller

import (
	"encoding/base64"
	"errors"
	"io"
	"net/url"
	"strings"
	"time"

	"medstory-be/internal/dto"
	"medstory-be/internal/entity"
	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/pkg/serverutils"
	"medstory-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const maxImageSize = 8 * 1024 * 1024

type INoteController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Image(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	now         func() time.Time
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
		now:         time.Now,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/note/v1")
	h.Use(auth)
	h.Get("image", c.Image)
	h.Get("", c.List)
	h.Post("", c.Save)
	h.Delete(":section/:fullDate", c.Delete)
}

func (c *noteController) Save(ctx *fiber.Ctx) error {
	uid := serverutils.GetUserId(ctx)

	var req dto.SaveNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	imageData, err := readImage(ctx, req.ImageBase64)
	if err != nil {
		return err
	}

	description := req.Description
	if description != nil && *description == "" {
		description = nil
	}
	note := entity.NewNote(c.now(), req.Section, req.Title, description)

	saved, err := c.noteService.SaveNote(ctx.UserContext(), uid, note, imageData)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success save note", dto.NewNoteResponse(saved)))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	uid := serverutils.GetUserId(ctx)

	var section *string
	if s := ctx.Query("section"); s != "" {
		section = &s
	}

	notes, err := c.noteService.ListNotes(ctx.UserContext(), uid, section)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", dto.NewNoteResponses(notes)))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	uid := serverutils.GetUserId(ctx)

	section, err := url.PathUnescape(ctx.Params("section"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid section")
	}
	fullDate, err := url.PathUnescape(ctx.Params("fullDate"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	note, err := c.noteService.GetNote(ctx.UserContext(), uid, section, fullDate)
	if errors.Is(err, service.ErrNoteNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	}
	if err != nil {
		return err
	}

	if err := c.noteService.DeleteNote(ctx.UserContext(), uid, note); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}

func (c *noteController) Image(ctx *fiber.Ctx) error {
	uid := serverutils.GetUserId(ctx)

	handle, err := c.noteService.FetchImage(ctx.UserContext(), uid, ctx.Query("ref"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch image", dto.NewImageHandleResponse(handle)))
}

// readImage takes the "image" multipart file when present, else the base64 JSON field.
func readImage(ctx *fiber.Ctx, b64 string) ([]byte, error) {
	if strings.HasPrefix(string(ctx.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		file, err := ctx.FormFile("image")
		if errors.Is(err, fasthttp.ErrMissingFile) {
			return nil, nil
		}
		if err != nil {
			return nil, &apperror.ValidationError{Field: "image", Reason: err.Error()}
		}
		if file.Size > maxImageSize {
			return nil, &apperror.ValidationError{Field: "image", Reason: "too large"}
		}
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	if b64 == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, &apperror.ValidationError{Field: "image_base64", Reason: "not valid base64"}
	}
	if len(data) > maxImageSize {
		return nil, &apperror.ValidationError{Field: "image_base64", Reason: "too large"}
	}
	return data, nil
}
