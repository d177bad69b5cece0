package seeders

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/holisticagro/agromart/pkg/rbac"
)

// Admins upserts a user with role admin for every phone. Existing users
// are promoted; their other fields are left alone.
func Admins(phones []string) Seeder {
	return Seeder{
		Name: "admins",
		Run: func(ctx context.Context, db *mongo.Database) error {
			users := db.Collection("users")
			for _, phone := range phones {
				phone = strings.TrimSpace(phone)
				if phone == "" {
					continue
				}
				_, err := users.UpdateOne(ctx,
					bson.D{{Key: "phone", Value: phone}},
					bson.D{
						{Key: "$set", Value: bson.D{{Key: "role", Value: rbac.RoleAdmin}}},
						{Key: "$setOnInsert", Value: bson.D{
							{Key: "cart", Value: bson.A{}},
							{Key: "createdAt", Value: time.Now().UTC()},
						}},
					},
					options.Update().SetUpsert(true),
				)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
