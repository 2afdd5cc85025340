package repository

import (
	"post_place_backend/internal/model"
	"post_place_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedInterests(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, it := range []model.Interest{
		{Name: "Fútbol", Category: "Deportes", Emoji: "⚽"},
		{Name: "Rock", Category: "Música", Emoji: "🎸"},
		{Name: "Jazz", Category: "Música", Emoji: "🎷"},
		{Name: "Cine", Category: "Entretenimiento", Emoji: "🎬"},
	} {
		require.NoError(t, db.Create(&it).Error)
	}
}

func addInterest(t *testing.T, repo *InterestRepository, userID uint, name string) {
	t.Helper()
	_, err := repo.Add(userID, name)
	require.NoError(t, err)
}

func TestAddAndListInterests(t *testing.T) {
	db := newTestDB(t)
	seedInterests(t, db)
	repo := NewInterestRepository(db)

	alice := createUser(t, db, "alice")

	interest, err := repo.Add(alice.ID, "Rock")
	require.NoError(t, err)
	assert.Equal(t, "Música", interest.Category)

	addInterest(t, repo, alice.ID, "Fútbol")

	mine, err := repo.ListUser(alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// 按分类、名称排序
	assert.Equal(t, "Fútbol", mine[0].Name)
	assert.Equal(t, "Rock", mine[1].Name)
}

func TestAddInterestErrors(t *testing.T) {
	db := newTestDB(t)
	seedInterests(t, db)
	repo := NewInterestRepository(db)

	alice := createUser(t, db, "alice")

	_, err := repo.Add(alice.ID, "Esgrima")
	assert.ErrorIs(t, err, util.ErrInterestNotFound)

	addInterest(t, repo, alice.ID, "Rock")
	_, err = repo.Add(alice.ID, "Rock")
	assert.ErrorIs(t, err, util.ErrInterestHeld)
}

func TestRemoveInterest(t *testing.T) {
	db := newTestDB(t)
	seedInterests(t, db)
	repo := NewInterestRepository(db)

	alice := createUser(t, db, "alice")
	addInterest(t, repo, alice.ID, "Rock")

	require.NoError(t, repo.Remove(alice.ID, "Rock"))
	assert.ErrorIs(t, repo.Remove(alice.ID, "Rock"), util.ErrInterestNotHeld)
}

func TestInterestStats(t *testing.T) {
	db := newTestDB(t)
	seedInterests(t, db)
	repo := NewInterestRepository(db)

	alice := createUser(t, db, "alice")
	addInterest(t, repo, alice.ID, "Rock")
	addInterest(t, repo, alice.ID, "Jazz")
	addInterest(t, repo, alice.ID, "Cine")

	stats, err := repo.Stats(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalInterests)
	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, []string{"Entretenimiento", "Música"}, stats.Categories)
}

func TestRecommendScoring(t *testing.T) {
	db := newTestDB(t)
	seedInterests(t, db)
	repo := NewInterestRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")

	addInterest(t, repo, alice.ID, "Rock")
	addInterest(t, repo, alice.ID, "Jazz")
	addInterest(t, repo, alice.ID, "Cine")

	// bob 共享 2 个，carol 共享 1 个，dave 没有共同兴趣
	addInterest(t, repo, bob.ID, "Rock")
	addInterest(t, repo, bob.ID, "Jazz")
	addInterest(t, repo, carol.ID, "Cine")
	addInterest(t, repo, dave.ID, "Fútbol")

	recs, err := repo.Recommend(alice.ID, 20)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, bob.ID, recs[0].UserID)
	assert.Equal(t, 2, recs[0].Score)
	assert.ElementsMatch(t, []string{"Rock", "Jazz"}, recs[0].SharedInterests)

	assert.Equal(t, carol.ID, recs[1].UserID)
	assert.Equal(t, 1, recs[1].Score)
	assert.Equal(t, []string{"Cine"}, recs[1].SharedInterests)
}

func TestRecommendTieBreakByName(t *testing.T) {
	db := newTestDB(t)
	seedInterests(t, db)
	repo := NewInterestRepository(db)

	alice := createUser(t, db, "alice")
	zoe := createUser(t, db, "zoe")
	ben := createUser(t, db, "ben")

	addInterest(t, repo, alice.ID, "Rock")
	addInterest(t, repo, zoe.ID, "Rock")
	addInterest(t, repo, ben.ID, "Rock")

	recs, err := repo.Recommend(alice.ID, 20)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// 同分按名称排序
	assert.Equal(t, ben.ID, recs[0].UserID)
	assert.Equal(t, zoe.ID, recs[1].UserID)
}

func TestRecommendExcludesFriendsAndPending(t *testing.T) {
	db := newTestDB(t)
	seedInterests(t, db)
	interestRepo := NewInterestRepository(db)
	friendshipRepo := NewFriendshipRepository(db, nil)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")
	eve := createUser(t, db, "eve")

	for _, u := range []uint{alice.ID, bob.ID, carol.ID, dave.ID, eve.ID} {
		addInterest(t, interestRepo, u, "Rock")
	}

	makeFriends(t, db, alice.ID, bob.ID)
	_, err := friendshipRepo.SendRequest(alice.ID, carol.ID, "")
	require.NoError(t, err)
	_, err = friendshipRepo.SendRequest(dave.ID, alice.ID, "")
	require.NoError(t, err)

	recs, err := interestRepo.Recommend(alice.ID, 20)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, eve.ID, recs[0].UserID)
}

func TestRecommendLimit(t *testing.T) {
	db := newTestDB(t)
	seedInterests(t, db)
	repo := NewInterestRepository(db)

	alice := createUser(t, db, "alice")
	addInterest(t, repo, alice.ID, "Rock")

	for _, name := range []string{"u1", "u2", "u3"} {
		u := createUser(t, db, name)
		addInterest(t, repo, u.ID, "Rock")
	}

	recs, err := repo.Recommend(alice.ID, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
