package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	models "github.com/cybersecclub/club-site-go/models"
)

type mongoUserDirectory struct {
	col *mongo.Collection
}

func NewMongoUserDirectory(col *mongo.Collection) UserDirectory {
	return &mongoUserDirectory{col: col}
}

func (r *mongoUserDirectory) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Summaries resolves a batch of user ids in one query. Unknown ids are
// simply missing from the result map.
func (r *mongoUserDirectory) Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	summaries := map[primitive.ObjectID]models.UserSummary{}
	if len(ids) == 0 {
		return summaries, nil
	}

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		summaries[u.ID] = *u.Summary()
	}
	return summaries, nil
}
