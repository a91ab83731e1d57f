package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/cybersecclub/club-site-go/models"
)

type mongoBlogRepository struct {
	col *mongo.Collection
}

func NewMongoBlogRepository(col *mongo.Collection) BlogRepository {
	return &mongoBlogRepository{col: col}
}

func (r *mongoBlogRepository) Insert(ctx context.Context, blog *models.Blog) error {
	_, err := r.col.InsertOne(ctx, blog)
	return err
}

func (r *mongoBlogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var blog models.Blog
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *mongoBlogRepository) ListByStatus(ctx context.Context, status string) ([]models.Blog, error) {
	return r.list(ctx, bson.M{"status": status})
}

func (r *mongoBlogRepository) ListByAuthor(ctx context.Context, author primitive.ObjectID, status string) ([]models.Blog, error) {
	filter := bson.M{"author": author}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter)
}

func (r *mongoBlogRepository) list(ctx context.Context, filter bson.M) ([]models.Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	blogs := []models.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *mongoBlogRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Blog, error) {
	return r.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
}

func (r *mongoBlogRepository) AddLike(ctx context.Context, id, user primitive.ObjectID) error {
	// $addToSet keeps the like set duplicate-free even when two requests
	// race each other
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$addToSet": bson.M{"likes": user},
		"$set":      bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBlogRepository) RemoveLike(ctx context.Context, id, user primitive.ObjectID) (bool, error) {
	// matching on the like itself makes remove-then-add toggling atomic:
	// this only fires when the like is present
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "likes": user}, bson.M{
		"$pull": bson.M{"likes": user},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoBlogRepository) PushComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Blog, error) {
	return r.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

func (r *mongoBlogRepository) PullComment(ctx context.Context, id, commentID primitive.ObjectID) (*models.Blog, error) {
	return r.findAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

func (r *mongoBlogRepository) findAndUpdate(ctx context.Context, filter, update bson.M) (*models.Blog, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var blog models.Blog
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}
