package domain

import "time"

// Categoria classifies a noticia for the public front-end filters.
type Categoria string

const (
	CategoriaAlert    Categoria = "alert"
	CategoriaForecast Categoria = "forecast"
	CategoriaReport   Categoria = "report"
	CategoriaAll      Categoria = "all"
)

// Valid reports whether c is a known categoria.
func (c Categoria) Valid() bool {
	switch c {
	case CategoriaAlert, CategoriaForecast, CategoriaReport, CategoriaAll:
		return true
	}
	return false
}

// Gravedad is the severity level of a weather alert.
type Gravedad string

const (
	GravedadBaja    Gravedad = "baja"
	GravedadMedia   Gravedad = "media"
	GravedadAlta    Gravedad = "alta"
	GravedadCritica Gravedad = "crítica"
)

// Valid reports whether g is a known gravedad.
func (g Gravedad) Valid() bool {
	switch g {
	case GravedadBaja, GravedadMedia, GravedadAlta, GravedadCritica:
		return true
	}
	return false
}

// Autor is the lightweight author view embedded in noticia responses.
type Autor struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

// Noticia is a published news/alert item. AutorID is fixed at creation and
// never reassigned.
type Noticia struct {
	ID               string    `json:"id"`
	Titulo           string    `json:"titulo"`
	Contenido        string    `json:"contenido"`
	Categoria        Categoria `json:"categoria"`
	Ciudad           string    `json:"ciudad"`
	Temperatura      string    `json:"temperatura"`
	Condicion        string    `json:"condicion"`
	Gravedad         Gravedad  `json:"gravedad"`
	Imagen           string    `json:"imagen"`
	AutorID          string    `json:"-"`
	Autor            *Autor    `json:"autor,omitempty"`
	Publicada        bool      `json:"publicada"`
	FechaPublicacion time.Time `json:"fechaPublicacion"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CanMutate reports whether a user may update this noticia: its author, or any
// admin. Deletion follows a stricter rule enforced at the route level (admin
// only, even for the author).
func (n *Noticia) CanMutate(userID, rol string) bool {
	return n.AutorID == userID || rol == RolAdmin
}
