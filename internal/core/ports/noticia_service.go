package ports

import (
	"context"

	"github.com/alertaclimatica/news-api/internal/core/domain"
)

// CreateNoticiaInput carries all data needed to create a noticia. AutorID is
// always set by the handler from the authenticated user, never from the
// request body.
type CreateNoticiaInput struct {
	Titulo      string
	Contenido   string
	Categoria   string
	Ciudad      string
	Temperatura string
	Condicion   string
	Gravedad    string
	Imagen      string
	Publicada   *bool
	AutorID     string
}

// UpdateNoticiaInput carries partial noticia fields plus the requester
// identity used for the ownership check.
type UpdateNoticiaInput struct {
	Update NoticiaUpdate

	RequesterID  string
	RequesterRol string
}

// ListNoticiasInput carries the public list query.
type ListNoticiasInput struct {
	Categoria string
	Ciudad    string
	Buscar    string
	Page      int
	Limit     int
}

// ListNoticiasResult is returned by List.
type ListNoticiasResult struct {
	Items        []*domain.Noticia
	Total        int64
	Pagina       int
	TotalPaginas int
}

// NoticiaService defines use-case operations for noticias.
type NoticiaService interface {
	List(ctx context.Context, input ListNoticiasInput) (*ListNoticiasResult, error)
	Get(ctx context.Context, id string) (*domain.Noticia, error)
	Create(ctx context.Context, input CreateNoticiaInput) (*domain.Noticia, error)
	Update(ctx context.Context, id string, input UpdateNoticiaInput) (*domain.Noticia, error)
	// Delete removes a noticia permanently. Only admins may delete, the
	// item's own author included.
	Delete(ctx context.Context, id string, requesterRol string) error
	Stats(ctx context.Context) (*NoticiaStats, error)
}
