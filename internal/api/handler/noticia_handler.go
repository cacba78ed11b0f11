package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/alertaclimatica/news-api/internal/core/domain"
	"github.com/alertaclimatica/news-api/internal/core/ports"
)

// NoticiaHandler handles HTTP requests for noticia operations.
type NoticiaHandler struct {
	service ports.NoticiaService
}

func NewNoticiaHandler(service ports.NoticiaService) *NoticiaHandler {
	return &NoticiaHandler{service: service}
}

// List handles GET /api/noticias.
//
// @Summary      List published noticias
// @Tags         noticias
// @Produce      json
// @Param        categoria  query     string  false  "Exact categoria; all/empty = no filter"
// @Param        ciudad     query     string  false  "Case-insensitive partial match"
// @Param        buscar     query     string  false  "Case-insensitive search over titulo and contenido"
// @Param        limit      query     int     false  "Page size (default 50)"
// @Param        page       query     int     false  "Page number (default 1)"
// @Success      200        {object}  listNoticiasResponse
// @Failure      500        {object}  envelope
// @Router       /api/noticias [get]
func (h *NoticiaHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListNoticiasInput{
		Categoria: c.QueryParam("categoria"),
		Ciudad:    c.QueryParam("ciudad"),
		Buscar:    c.QueryParam("buscar"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []*domain.Noticia{}
	}

	return c.JSON(http.StatusOK, listNoticiasResponse{
		Success:      true,
		Total:        result.Total,
		Pagina:       result.Pagina,
		TotalPaginas: result.TotalPaginas,
		Data:         items,
	})
}

// Get handles GET /api/noticias/:id.
//
// @Summary      Get a noticia by id
// @Tags         noticias
// @Produce      json
// @Param        id   path      string  true  "Noticia id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/noticias/{id} [get]
func (h *NoticiaHandler) Get(c echo.Context) error {
	n, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNoticiaNotFound) {
			return respondError(c, http.StatusNotFound, "Noticia no encontrada")
		}
		return err
	}

	return respondData(c, http.StatusOK, "", n)
}

// Create handles POST /api/noticias. The author is always the authenticated
// requester, regardless of anything in the body.
//
// @Summary      Create a noticia
// @Tags         noticias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      crearNoticiaRequest  true  "Noticia fields"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /api/noticias [post]
func (h *NoticiaHandler) Create(c echo.Context) error {
	user, err := ctxUsuario(c)
	if err != nil {
		return err
	}

	var req crearNoticiaRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return validationResponse(c, err)
	}
	req = req.sanitized()

	n, err := h.service.Create(c.Request().Context(), ports.CreateNoticiaInput{
		Titulo:      req.Titulo,
		Contenido:   req.Contenido,
		Categoria:   req.Categoria,
		Ciudad:      req.Ciudad,
		Temperatura: req.Temperatura,
		Condicion:   req.Condicion,
		Gravedad:    req.Gravedad,
		Imagen:      req.Imagen,
		Publicada:   req.Publicada,
		AutorID:     user.ID,
	})
	if err != nil {
		return err
	}

	return respondData(c, http.StatusCreated, "Noticia creada exitosamente", n)
}

// Update handles PUT /api/noticias/:id with partial semantics.
//
// @Summary      Update a noticia
// @Tags         noticias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Noticia id"
// @Param        body  body      actualizarNoticiaRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/noticias/{id} [put]
func (h *NoticiaHandler) Update(c echo.Context) error {
	user, err := ctxUsuario(c)
	if err != nil {
		return err
	}

	var req actualizarNoticiaRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return validationResponse(c, err)
	}

	n, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateNoticiaInput{
		Update:       req.toUpdate(),
		RequesterID:  user.ID,
		RequesterRol: user.Rol,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNoticiaNotFound) {
			return respondError(c, http.StatusNotFound, "Noticia no encontrada")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return respondError(c, http.StatusForbidden, "No tienes permiso para actualizar esta noticia")
		}
		return err
	}

	return respondData(c, http.StatusOK, "Noticia actualizada exitosamente", n)
}

// Delete handles DELETE /api/noticias/:id. Admin only.
//
// @Summary      Delete a noticia
// @Tags         noticias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Noticia id"
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/noticias/{id} [delete]
func (h *NoticiaHandler) Delete(c echo.Context) error {
	user, err := ctxUsuario(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), user.Rol); err != nil {
		if errors.Is(err, domain.ErrNoticiaNotFound) {
			return respondError(c, http.StatusNotFound, "Noticia no encontrada")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return respondError(c, http.StatusForbidden, "No tienes permiso para eliminar esta noticia")
		}
		return err
	}

	return respondData(c, http.StatusOK, "Noticia eliminada exitosamente", nil)
}

// Stats handles GET /api/noticias/stats/general.
//
// @Summary      Aggregate noticia stats
// @Tags         noticias
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /api/noticias/stats/general [get]
func (h *NoticiaHandler) Stats(c echo.Context) error {
	if _, err := ctxUsuario(c); err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return respondData(c, http.StatusOK, "", stats)
}
