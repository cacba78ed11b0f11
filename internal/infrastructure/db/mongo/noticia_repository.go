package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alertaclimatica/news-api/internal/core/domain"
	"github.com/alertaclimatica/news-api/internal/core/ports"
)

const collectionNoticias = "noticias"

type NoticiaRepository struct {
	coll *mongo.Collection
}

func NewNoticiaRepository(db *mongo.Database) *NoticiaRepository {
	return &NoticiaRepository{coll: db.Collection(collectionNoticias)}
}

type mongoNoticia struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Titulo           string             `bson:"titulo"`
	Contenido        string             `bson:"contenido"`
	Categoria        string             `bson:"categoria"`
	Ciudad           string             `bson:"ciudad"`
	Temperatura      string             `bson:"temperatura"`
	Condicion        string             `bson:"condicion"`
	Gravedad         string             `bson:"gravedad"`
	Imagen           string             `bson:"imagen,omitempty"`
	AutorID          primitive.ObjectID `bson:"autor"`
	Publicada        bool               `bson:"publicada"`
	FechaPublicacion time.Time          `bson:"fecha_publicacion"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (mn *mongoNoticia) toDomain() *domain.Noticia {
	return &domain.Noticia{
		ID:               mn.ID.Hex(),
		Titulo:           mn.Titulo,
		Contenido:        mn.Contenido,
		Categoria:        domain.Categoria(mn.Categoria),
		Ciudad:           mn.Ciudad,
		Temperatura:      mn.Temperatura,
		Condicion:        mn.Condicion,
		Gravedad:         domain.Gravedad(mn.Gravedad),
		Imagen:           mn.Imagen,
		AutorID:          mn.AutorID.Hex(),
		Publicada:        mn.Publicada,
		FechaPublicacion: mn.FechaPublicacion,
		CreatedAt:        mn.CreatedAt,
		UpdatedAt:        mn.UpdatedAt,
	}
}

// Create inserts a new noticia document.
func (r *NoticiaRepository) Create(ctx context.Context, n *domain.Noticia) (*domain.Noticia, error) {
	autorOID, err := primitive.ObjectIDFromHex(n.AutorID)
	if err != nil {
		return nil, fmt.Errorf("invalid autor id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoNoticia{
		Titulo:           n.Titulo,
		Contenido:        n.Contenido,
		Categoria:        string(n.Categoria),
		Ciudad:           n.Ciudad,
		Temperatura:      n.Temperatura,
		Condicion:        n.Condicion,
		Gravedad:         string(n.Gravedad),
		Imagen:           n.Imagen,
		AutorID:          autorOID,
		Publicada:        n.Publicada,
		FechaPublicacion: n.FechaPublicacion,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert noticia: %w", err)
	}

	created := *n
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NoticiaRepository) FindByID(ctx context.Context, id string) (*domain.Noticia, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoticiaNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mn mongoNoticia
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoticiaNotFound
		}
		return nil, fmt.Errorf("find noticia: %w", err)
	}
	return mn.toDomain(), nil
}

// List returns a page of noticias matching filter, newest publication first,
// plus the total count of matches.
func (r *NoticiaRepository) List(ctx context.Context, filter ports.ListNoticiasFilter) ([]*domain.Noticia, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.SoloPublicadas {
		query["publicada"] = true
	}
	if filter.Categoria != "" && filter.Categoria != string(domain.CategoriaAll) {
		query["categoria"] = filter.Categoria
	}
	if filter.Ciudad != "" {
		query["ciudad"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Ciudad), Options: "i"}
	}
	if filter.Buscar != "" {
		buscar := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Buscar), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"titulo": buscar},
			bson.M{"contenido": buscar},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count noticias: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "fecha_publicacion", Value: -1}}).
		SetSkip(int64((page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find noticias: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Noticia
	for cursor.Next(ctx) {
		var mn mongoNoticia
		if err := cursor.Decode(&mn); err != nil {
			return nil, 0, fmt.Errorf("decode noticia: %w", err)
		}
		items = append(items, mn.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate noticias: %w", err)
	}

	return items, total, nil
}

// Update applies a partial $set and returns the updated document.
func (r *NoticiaRepository) Update(ctx context.Context, id string, update ports.NoticiaUpdate) (*domain.Noticia, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoticiaNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Titulo != nil {
		set["titulo"] = *update.Titulo
	}
	if update.Contenido != nil {
		set["contenido"] = *update.Contenido
	}
	if update.Categoria != nil {
		set["categoria"] = string(*update.Categoria)
	}
	if update.Ciudad != nil {
		set["ciudad"] = *update.Ciudad
	}
	if update.Temperatura != nil {
		set["temperatura"] = *update.Temperatura
	}
	if update.Condicion != nil {
		set["condicion"] = *update.Condicion
	}
	if update.Gravedad != nil {
		set["gravedad"] = string(*update.Gravedad)
	}
	if update.Imagen != nil {
		set["imagen"] = *update.Imagen
	}
	if update.Publicada != nil {
		set["publicada"] = *update.Publicada
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mn mongoNoticia
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoticiaNotFound
		}
		return nil, fmt.Errorf("update noticia: %w", err)
	}
	return mn.toDomain(), nil
}

// Delete removes a noticia permanently.
func (r *NoticiaRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNoticiaNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete noticia: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoticiaNotFound
	}
	return nil
}

// Stats aggregates total plus counts grouped by categoria and gravedad.
func (r *NoticiaRepository) Stats(ctx context.Context) (*ports.NoticiaStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count noticias: %w", err)
	}

	porCategoria, err := r.groupCounts(ctx, "$categoria")
	if err != nil {
		return nil, err
	}
	porGravedad, err := r.groupCounts(ctx, "$gravedad")
	if err != nil {
		return nil, err
	}

	return &ports.NoticiaStats{
		Total:        total,
		PorCategoria: porCategoria,
		PorGravedad:  porGravedad,
	}, nil
}

func (r *NoticiaRepository) groupCounts(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: field},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Total int64  `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode group row: %w", err)
		}
		counts[row.ID] = row.Total
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate group rows: %w", err)
	}
	return counts, nil
}

// EnsureIndexes creates the text and listing indexes on the noticias
// collection.
func (r *NoticiaRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "titulo", Value: "text"}, {Key: "contenido", Value: "text"}}},
		{Keys: bson.D{{Key: "categoria", Value: 1}, {Key: "fecha_publicacion", Value: -1}}},
		{Keys: bson.D{{Key: "autor", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
