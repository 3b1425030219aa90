package controller

import (
	"medstory-be/internal/dto"
	"medstory-be/internal/pkg/serverutils"
	"medstory-be/internal/service"
	"medstory-be/internal/taxonomy"

	"github.com/gofiber/fiber/v2"
)

type ITaxonomyController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Resolve(ctx *fiber.Ctx) error
}

type taxonomyController struct {
	noteService service.INoteService
}

func NewTaxonomyController(noteService service.INoteService) ITaxonomyController {
	return &taxonomyController{noteService: noteService}
}

// RegisterRoutes mounts the taxonomy endpoints. They need no login.
func (c *taxonomyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/taxonomy/v1")
	h.Get("", c.List)
	h.Get(":section", c.Resolve)
}

func (c *taxonomyController) List(ctx *fiber.Ctx) error {
	groups := taxonomy.Groups()
	res := make([]dto.TaxonomyGroup, 0, len(groups))
	for _, g := range groups {
		res = append(res, dto.TaxonomyGroup{Name: g, Leaves: taxonomy.Leaves(g)})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list taxonomy", res))
}

func (c *taxonomyController) Resolve(ctx *fiber.Ctx) error {
	section := ctx.Params("section")
	path, err := c.noteService.ResolvePath(section)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success resolve section", dto.ResolvedPathResponse{
		Section: section,
		Group:   path.Group,
		Leaf:    path.Leaf,
		Path:    path.String(),
	}))
}
