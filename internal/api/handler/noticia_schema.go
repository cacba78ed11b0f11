package handler

import (
	"github.com/alertaclimatica/news-api/internal/api/middleware"
	"github.com/alertaclimatica/news-api/internal/core/domain"
	"github.com/alertaclimatica/news-api/internal/core/ports"
)

type crearNoticiaRequest struct {
	Titulo      string `json:"titulo"      validate:"required,min=5,max=200"`
	Contenido   string `json:"contenido"   validate:"required,min=10"`
	Categoria   string `json:"categoria"   validate:"omitempty,oneof=alert forecast report all"`
	Ciudad      string `json:"ciudad"`
	Temperatura string `json:"temperatura"`
	Condicion   string `json:"condicion"`
	Gravedad    string `json:"gravedad"    validate:"omitempty,oneof=baja media alta crítica"`
	Imagen      string `json:"imagen"`
	Publicada   *bool  `json:"publicada"`
}

// sanitized returns the request with Mongo operator characters stripped from
// every free-text field.
func (r crearNoticiaRequest) sanitized() crearNoticiaRequest {
	r.Titulo = middleware.SanitizeString(r.Titulo)
	r.Contenido = middleware.SanitizeString(r.Contenido)
	r.Ciudad = middleware.SanitizeString(r.Ciudad)
	r.Temperatura = middleware.SanitizeString(r.Temperatura)
	r.Condicion = middleware.SanitizeString(r.Condicion)
	r.Imagen = middleware.SanitizeString(r.Imagen)
	return r
}

// actualizarNoticiaRequest carries partial update fields; absent fields keep
// their stored values.
type actualizarNoticiaRequest struct {
	Titulo      *string `json:"titulo"      validate:"omitempty,min=5,max=200"`
	Contenido   *string `json:"contenido"   validate:"omitempty,min=10"`
	Categoria   *string `json:"categoria"   validate:"omitempty,oneof=alert forecast report all"`
	Ciudad      *string `json:"ciudad"`
	Temperatura *string `json:"temperatura"`
	Condicion   *string `json:"condicion"`
	Gravedad    *string `json:"gravedad"    validate:"omitempty,oneof=baja media alta crítica"`
	Imagen      *string `json:"imagen"`
	Publicada   *bool   `json:"publicada"`
}

func (r actualizarNoticiaRequest) toUpdate() ports.NoticiaUpdate {
	u := ports.NoticiaUpdate{
		Ciudad:      sanitizePtr(r.Ciudad),
		Temperatura: sanitizePtr(r.Temperatura),
		Condicion:   sanitizePtr(r.Condicion),
		Imagen:      sanitizePtr(r.Imagen),
		Publicada:   r.Publicada,
	}
	u.Titulo = sanitizePtr(r.Titulo)
	u.Contenido = sanitizePtr(r.Contenido)
	if r.Categoria != nil {
		cat := domain.Categoria(*r.Categoria)
		u.Categoria = &cat
	}
	if r.Gravedad != nil {
		g := domain.Gravedad(*r.Gravedad)
		u.Gravedad = &g
	}
	return u
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := middleware.SanitizeString(*s)
	return &clean
}

// listNoticiasResponse is the flat list envelope: pagination fields sit next
// to success rather than nested under data.
type listNoticiasResponse struct {
	Success      bool              `json:"success"`
	Total        int64             `json:"total"`
	Pagina       int               `json:"pagina"`
	TotalPaginas int               `json:"totalPaginas"`
	Data         []*domain.Noticia `json:"data"`
}
