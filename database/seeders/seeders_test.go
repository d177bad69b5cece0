package seeders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/holisticagro/agromart/database/seeders"
)

func TestAdminsUpsertsEachPhone(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upserts", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		err := seeders.RunAll(context.Background(), mt.DB, seeders.Admins([]string{"01700000000", " ", "01800000000"}))
		require.NoError(mt, err)
	})

	mt.Run("stops on error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))

		err := seeders.RunAll(context.Background(), mt.DB, seeders.Admins([]string{"01700000000"}))
		assert.ErrorContains(mt, err, `seeder "admins"`)
	})
}
