package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/alertaclimatica/news-api/internal/api/metrics"
	"github.com/alertaclimatica/news-api/internal/core/domain"
	"github.com/alertaclimatica/news-api/internal/core/ports"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// StatsCache caches the aggregate stats result for a short TTL.
type StatsCache interface {
	Get(ctx context.Context) (*ports.NoticiaStats, bool)
	Set(ctx context.Context, stats *ports.NoticiaStats)
}

// NoticiaService implements CRUD, filtered listing and stats over noticias.
type NoticiaService struct {
	repo   ports.NoticiaRepository
	users  ports.UserRepository
	cache  StatsCache // optional
	logger zerolog.Logger
}

func NewNoticiaService(repo ports.NoticiaRepository, users ports.UserRepository, cache StatsCache, logger zerolog.Logger) *NoticiaService {
	return &NoticiaService{repo: repo, users: users, cache: cache, logger: logger}
}

// List returns published noticias matching the query, newest first.
func (s *NoticiaService) List(ctx context.Context, input ports.ListNoticiasInput) (*ports.ListNoticiasResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListNoticiasFilter{
		Categoria:      input.Categoria,
		Ciudad:         input.Ciudad,
		Buscar:         input.Buscar,
		SoloPublicadas: true,
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}

	s.populateAutores(ctx, items)

	totalPaginas := int(total) / limit
	if int(total)%limit != 0 {
		totalPaginas++
	}

	return &ports.ListNoticiasResult{
		Items:        items,
		Total:        total,
		Pagina:       page,
		TotalPaginas: totalPaginas,
	}, nil
}

// Get returns one noticia by id, with its author resolved.
func (s *NoticiaService) Get(ctx context.Context, id string) (*domain.Noticia, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateAutores(ctx, []*domain.Noticia{n})
	return n, nil
}

// Create stores a new noticia. The author is always the requester.
func (s *NoticiaService) Create(ctx context.Context, input ports.CreateNoticiaInput) (*domain.Noticia, error) {
	now := time.Now().UTC()

	n := &domain.Noticia{
		Titulo:           input.Titulo,
		Contenido:        input.Contenido,
		Categoria:        domain.Categoria(input.Categoria),
		Ciudad:           input.Ciudad,
		Temperatura:      input.Temperatura,
		Condicion:        input.Condicion,
		Gravedad:         domain.Gravedad(input.Gravedad),
		Imagen:           input.Imagen,
		AutorID:          input.AutorID,
		Publicada:        true,
		FechaPublicacion: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if n.Categoria == "" {
		n.Categoria = domain.CategoriaAll
	}
	if n.Ciudad == "" {
		n.Ciudad = "General"
	}
	if n.Temperatura == "" {
		n.Temperatura = "--°C"
	}
	if n.Condicion == "" {
		n.Condicion = "--"
	}
	if n.Gravedad == "" {
		n.Gravedad = domain.GravedadMedia
	}
	if input.Publicada != nil {
		n.Publicada = *input.Publicada
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error().Err(err).Msg("no se pudo crear la noticia")
		return nil, err
	}

	s.logger.Info().Str("noticia_id", created.ID).Str("categoria", string(created.Categoria)).Msg("noticia creada")
	metrics.NoticiasCreatedTotal.WithLabelValues(string(created.Categoria)).Inc()

	s.populateAutores(ctx, []*domain.Noticia{created})
	return created, nil
}

// Update applies a partial update. Only the author or an admin may update.
func (s *NoticiaService) Update(ctx context.Context, id string, input ports.UpdateNoticiaInput) (*domain.Noticia, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !existing.CanMutate(input.RequesterID, input.RequesterRol) {
		return nil, domain.ErrForbidden
	}

	updated, err := s.repo.Update(ctx, id, input.Update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("noticia_id", id).Str("user_id", input.RequesterID).Msg("noticia actualizada")
	s.populateAutores(ctx, []*domain.Noticia{updated})
	return updated, nil
}

// Delete removes a noticia permanently. Admin only, authorship does not grant
// deletion.
func (s *NoticiaService) Delete(ctx context.Context, id string, requesterRol string) error {
	if requesterRol != domain.RolAdmin {
		return domain.ErrForbidden
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("noticia_id", id).Msg("noticia eliminada")
	return nil
}

// Stats returns total counts grouped by categoria and gravedad, served from
// the cache when fresh.
func (s *NoticiaService) Stats(ctx context.Context) (*ports.NoticiaStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx); ok {
			return stats, nil
		}
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

// populateAutores resolves author references into the embedded Autor view.
// Lookup failures leave the noticia without an author rather than failing the
// read.
func (s *NoticiaService) populateAutores(ctx context.Context, items []*domain.Noticia) {
	resolved := make(map[string]*domain.Autor)
	for _, n := range items {
		if n.AutorID == "" {
			continue
		}
		autor, ok := resolved[n.AutorID]
		if !ok {
			user, err := s.users.FindByID(ctx, n.AutorID)
			if err != nil {
				resolved[n.AutorID] = nil
				continue
			}
			autor = &domain.Autor{ID: user.ID, Nombre: user.Nombre, Email: user.Email}
			resolved[n.AutorID] = autor
		}
		n.Autor = autor
	}
}
