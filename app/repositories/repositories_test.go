package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/holisticagro/agromart/app/models"
	"github.com/holisticagro/agromart/app/repositories"
)

func mockOpts() *mtest.Options {
	return mtest.NewOptions().ClientType(mtest.Mock)
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mockOpts())
	ctx := context.Background()

	mt.Run("find by phone", func(mt *mtest.T) {
		repo := repositories.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "phone", Value: "01712345678"},
			{Key: "name", Value: "Rahim"},
			{Key: "role", Value: "customer"},
		}))

		u, err := repo.FindByPhone(ctx, "01712345678")
		require.NoError(mt, err)
		assert.Equal(mt, "Rahim", u.Name)
		assert.Equal(mt, "customer", u.Role)
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := repositories.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		_, err := repo.FindByPhone(ctx, "01700000000")
		assert.ErrorIs(mt, err, repositories.ErrNotFound)
	})

	mt.Run("role of missing user is empty", func(mt *mtest.T) {
		repo := repositories.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		role, err := repo.RoleOf(ctx, "01700000000")
		require.NoError(mt, err)
		assert.Empty(mt, role)
	})

	mt.Run("role of admin", func(mt *mtest.T) {
		repo := repositories.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch,
			bson.D{{Key: "role", Value: "admin"}}))

		role, err := repo.RoleOf(ctx, "01711111111")
		require.NoError(mt, err)
		assert.Equal(mt, "admin", role)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := repositories.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		err := repo.Create(ctx, models.NewUser("01712345678", "", "", "", time.Now()))
		assert.ErrorIs(mt, err, repositories.ErrDuplicate)
	})

	mt.Run("add to cart reports counts", func(mt *mtest.T) {
		repo := repositories.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0},
		))

		line, err := models.NewCartLine(map[string]any{"title": "Sweet Corn"})
		require.NoError(mt, err)
		res, err := repo.AddToCart(ctx, "01712345678", line)
		require.NoError(mt, err)
		assert.Equal(mt, repositories.UpdateResult{Matched: 1, Modified: 0}, res)
	})

	mt.Run("clear cart", func(mt *mtest.T) {
		repo := repositories.NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1},
		))

		res, err := repo.ClearCart(ctx, "01712345678")
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.Modified)
	})
}

func TestOrderRepository(t *testing.T) {
	mt := mtest.New(t, mockOpts())
	ctx := context.Background()

	mt.Run("insert", func(mt *mtest.T) {
		repo := repositories.NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Insert(ctx, models.NewOrder(map[string]any{"total": 120.0}, "017", time.Now()))
		require.NoError(mt, err)
		assert.NotNil(mt, id)
	})

	mt.Run("by phone", func(mt *mtest.T) {
		repo := repositories.NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.orders", mtest.FirstBatch,
			bson.D{{Key: "userLoginNumber", Value: "017"}, {Key: "status", Value: "pending"}},
			bson.D{{Key: "userLoginNumber", Value: "017"}, {Key: "status", Value: "shipped"}},
		))

		orders, err := repo.ByPhone(ctx, "017")
		require.NoError(mt, err)
		require.Len(mt, orders, 2)
		assert.Equal(mt, "shipped", orders[1]["status"])
	})

	mt.Run("empty list is not nil", func(mt *mtest.T) {
		repo := repositories.NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.orders", mtest.FirstBatch))

		orders, err := repo.All(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, orders)
		assert.Empty(mt, orders)
	})

	mt.Run("update status no match", func(mt *mtest.T) {
		repo := repositories.NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0},
		))

		res, err := repo.UpdateStatus(ctx, primitive.NewObjectID(), "shipped")
		require.NoError(mt, err)
		assert.Zero(mt, res.Matched)
	})
}

func TestDocumentRepository(t *testing.T) {
	mt := mtest.New(t, mockOpts())
	ctx := context.Background()

	mt.Run("insert assigns id", func(mt *mtest.T) {
		repo := repositories.NewDocumentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		doc := &models.Document{Name: "Rahim", PDF: "1700000000000a.pdf"}
		id, err := repo.Insert(ctx, doc)
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())
		assert.Equal(mt, id, doc.ID)
	})

	mt.Run("find and delete", func(mt *mtest.T) {
		repo := repositories.NewDocumentRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "db.pdfDetails", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: id}, {Key: "pdf", Value: "1700000000000a.pdf"}}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		doc, err := repo.FindByID(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, "1700000000000a.pdf", doc.PDF)

		n, err := repo.DeleteByID(ctx, id)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})

	mt.Run("find missing", func(mt *mtest.T) {
		repo := repositories.NewDocumentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.pdfDetails", mtest.FirstBatch))

		_, err := repo.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repositories.ErrNotFound)
	})
}

func TestRecordRepository(t *testing.T) {
	mt := mtest.New(t, mockOpts())
	ctx := context.Background()

	mt.Run("search", func(mt *mtest.T) {
		repo := repositories.NewRecordRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.products", mtest.FirstBatch,
			bson.D{{Key: "title", Value: "Sweet Corn"}},
			bson.D{{Key: "title", Value: "corn flour"}},
		))

		recs, err := repo.Search(ctx, models.CollectionProducts, "title", "corn")
		require.NoError(mt, err)
		require.Len(mt, recs, 2)
		assert.Equal(mt, "Sweet Corn", recs[0]["title"])
	})

	mt.Run("insert returns id", func(mt *mtest.T) {
		repo := repositories.NewRecordRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Insert(ctx, models.CollectionCoupons, models.Record{"code": "SAVE10"})
		require.NoError(mt, err)
		assert.NotNil(mt, id)
	})

	mt.Run("delete nothing", func(mt *mtest.T) {
		repo := repositories.NewRecordRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		n, err := repo.Delete(ctx, models.CollectionJobs, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		repo := repositories.NewRecordRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.products", mtest.FirstBatch))

		_, err := repo.FindByID(ctx, models.CollectionProducts, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repositories.ErrNotFound)
	})

	mt.Run("command error surfaces", func(mt *mtest.T) {
		repo := repositories.NewRecordRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "bad query",
		}))

		_, err := repo.All(ctx, models.CollectionBanner)
		assert.ErrorContains(mt, err, "banner: find")
	})
}
