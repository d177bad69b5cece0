package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/holisticagro/agromart/pkg/migration"
)

func init() {
	migration.Register("20260101000000_users_phone_unique", index("users", bson.D{{Key: "phone", Value: 1}}, true))
	migration.Register("20260101000001_orders_login_number", index("orders", bson.D{{Key: "userLoginNumber", Value: 1}, {Key: "createdAt", Value: -1}}, false))
	migration.Register("20260101000002_products_category", index("products", bson.D{{Key: "category", Value: 1}}, false))
	migration.Register("20260101000003_pdf_details_created", index("pdfDetails", bson.D{{Key: "createdAt", Value: -1}}, false))
}

func index(collection string, keys bson.D, unique bool) migration.Func {
	return func(ctx context.Context, db *mongo.Database) error {
		model := mongo.IndexModel{Keys: keys}
		if unique {
			model.Options = options.Index().SetUnique(true)
		}
		_, err := db.Collection(collection).Indexes().CreateOne(ctx, model)
		return err
	}
}
