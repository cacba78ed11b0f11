package ports

import (
	"context"

	"github.com/alertaclimatica/news-api/internal/core/domain"
)

// ListNoticiasFilter carries all query parameters for listing noticias.
type ListNoticiasFilter struct {
	// Categoria filters by exact match; empty or "all" means no filter.
	Categoria string
	// Ciudad is a case-insensitive partial match.
	Ciudad string
	// Buscar is a case-insensitive partial match on titulo or contenido.
	Buscar string
	// SoloPublicadas restricts results to publicada=true. Always set by the
	// public list path.
	SoloPublicadas bool
	Page           int // 1-based
	Limit          int // rows per page
}

// NoticiaUpdate holds partial-update fields; nil pointers leave the stored
// value untouched.
type NoticiaUpdate struct {
	Titulo      *string
	Contenido   *string
	Categoria   *domain.Categoria
	Ciudad      *string
	Temperatura *string
	Condicion   *string
	Gravedad    *domain.Gravedad
	Imagen      *string
	Publicada   *bool
}

// NoticiaStats aggregates counts over the whole collection.
type NoticiaStats struct {
	Total        int64            `json:"total"`
	PorCategoria map[string]int64 `json:"porCategoria"`
	PorGravedad  map[string]int64 `json:"porGravedad"`
}

// NoticiaRepository defines persistence operations for noticias.
type NoticiaRepository interface {
	Create(ctx context.Context, n *domain.Noticia) (*domain.Noticia, error)
	FindByID(ctx context.Context, id string) (*domain.Noticia, error)
	// List returns a page of noticias matching filter, newest publication
	// first, plus the total count of matches.
	List(ctx context.Context, filter ListNoticiasFilter) ([]*domain.Noticia, int64, error)
	Update(ctx context.Context, id string, update NoticiaUpdate) (*domain.Noticia, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*NoticiaStats, error)
}
