// Package mongo implements the ArticleStore on MongoDB. Documents keep the
// field names of the saved-article collection used by the web client
// (urlToImage, publishedAt, savedAt, source.name).
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

// CollectionName is the collection holding saved articles.
const CollectionName = "articles"

type sourceDoc struct {
	ID   string `bson:"id,omitempty"`
	Name string `bson:"name"`
}

type articleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	URL         string             `bson:"url"`
	URLToImage  string             `bson:"urlToImage,omitempty"`
	PublishedAt time.Time          `bson:"publishedAt"`
	Source      sourceDoc          `bson:"source"`
	Author      string             `bson:"author,omitempty"`
	Content     string             `bson:"content,omitempty"`
	Category    string             `bson:"category,omitempty"`
	SavedAt     time.Time          `bson:"savedAt"`
}

func toDoc(a *entity.Article) articleDoc {
	// BSON の日時はミリ秒精度
	return articleDoc{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		URLToImage:  a.URLToImage,
		PublishedAt: a.PublishedAt.UTC().Truncate(time.Millisecond),
		Source:      sourceDoc{ID: a.Source.ID, Name: a.Source.Name},
		Author:      a.Author,
		Content:     a.Content,
		Category:    a.Category,
		SavedAt:     a.SavedAt.UTC().Truncate(time.Millisecond),
	}
}

func (d articleDoc) toEntity() *entity.Article {
	return &entity.Article{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		URL:         d.URL,
		URLToImage:  d.URLToImage,
		PublishedAt: d.PublishedAt,
		Source:      entity.Source{ID: d.Source.ID, Name: d.Source.Name},
		Author:      d.Author,
		Content:     d.Content,
		Category:    d.Category,
		SavedAt:     d.SavedAt,
	}
}

// ArticleRepo stores articles in a single collection with a unique index on url.
type ArticleRepo struct {
	coll *mongo.Collection
}

// NewArticleRepo returns a store backed by the articles collection of db.
func NewArticleRepo(db *mongo.Database) *ArticleRepo {
	return NewArticleRepoFromCollection(db.Collection(CollectionName))
}

// NewArticleRepoFromCollection wraps an existing collection handle.
func NewArticleRepoFromCollection(coll *mongo.Collection) *ArticleRepo {
	return &ArticleRepo{coll: coll}
}

var _ repository.ArticleStore = (*ArticleRepo)(nil)

// EnsureIndexes creates the unique url index InsertIfAbsent depends on,
// plus the savedAt index used for listing.
func (repo *ArticleRepo) EnsureIndexes(ctx context.Context) error {
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "url", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("url_unique"),
		},
		{
			Keys:    bson.D{{Key: "savedAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("savedAt_desc"),
		},
	})
	if err != nil {
		return classify("EnsureIndexes", err)
	}
	return nil
}

func (repo *ArticleRepo) FindByURL(ctx context.Context, url string) (*entity.Article, error) {
	var doc articleDoc
	err := repo.coll.FindOne(ctx, bson.M{"url": url}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("FindByURL", err)
	}
	return doc.toEntity(), nil
}

func (repo *ArticleRepo) InsertIfAbsent(ctx context.Context, article *entity.Article) (repository.InsertResult, error) {
	doc := toDoc(article)
	doc.ID = primitive.NewObjectID()

	_, err := repo.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return repository.InsertResult{Outcome: repository.AlreadyExists}, nil
	}
	if err != nil {
		return repository.InsertResult{}, classify("InsertIfAbsent", err)
	}
	return repository.InsertResult{Outcome: repository.Inserted, Article: doc.toEntity()}, nil
}

func (repo *ArticleRepo) ListAll(ctx context.Context, limit int) ([]*entity.Article, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "savedAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classify("ListAll", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	articles := make([]*entity.Article, 0, max(limit, 0))
	for cursor.Next(ctx) {
		var doc articleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("ListAll: Decode: %w", err)
		}
		articles = append(articles, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, classify("ListAll", err)
	}
	return articles, nil
}

func (repo *ArticleRepo) DeleteByID(ctx context.Context, id string) (*entity.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc articleDoc
	err = repo.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("DeleteByID", err)
	}
	return doc.toEntity(), nil
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	n, err := repo.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, classify("Count", err)
	}
	return n, nil
}

func (repo *ArticleRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := repo.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, classify("DeleteAll", err)
	}
	return res.DeletedCount, nil
}

func (repo *ArticleRepo) Ping(ctx context.Context) error {
	if err := repo.coll.Database().Client().Ping(ctx, nil); err != nil {
		return classify("Ping", err)
	}
	return nil
}

func classify(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%s: %w: %w", op, repository.ErrUnavailable, err)
	}
	var sse mongo.ServerError
	if errors.As(err, &sse) && sse.HasErrorLabel("RetryableWriteError") {
		return fmt.Errorf("%s: %w: %w", op, repository.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
