package repository

import (
	"post_place_backend/internal/model"
	"post_place_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	alice := createUser(t, db, "alice")

	post := &model.Post{UserID: alice.ID, Title: "hola", Content: "primer post"}
	require.NoError(t, repo.Create(post))
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "alice", post.Author.Name)

	loaded, err := repo.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "primer post", loaded.Content)
}

func TestGetPostNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.FindByID("missing")
	assert.ErrorIs(t, err, util.ErrPostNotFound)
}

func TestListPostsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	alice := createUser(t, db, "alice")

	first := &model.Post{UserID: alice.ID, Title: "uno", Content: "a"}
	require.NoError(t, repo.Create(first))
	second := &model.Post{UserID: alice.ID, Title: "dos", Content: "b"}
	require.NoError(t, repo.Create(second))

	// created_at 在同一毫秒内会并列，手动拉开
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Minute)).Error)

	posts, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "dos", posts[0].Title)
}

func TestSearchPosts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	byTitle := &model.Post{UserID: alice.ID, Title: "Receta de Tortilla", Content: "con papas"}
	require.NoError(t, repo.Create(byTitle))
	byContent := &model.Post{UserID: bob.ID, Title: "cena de hoy", Content: "me salió una tortilla enorme"}
	require.NoError(t, repo.Create(byContent))
	other := &model.Post{UserID: bob.ID, Title: "paseo", Content: "por el parque"}
	require.NoError(t, repo.Create(other))

	require.NoError(t, db.Model(byTitle).Update("created_at", time.Now().Add(-time.Minute)).Error)

	comment := &model.Comment{PostID: byTitle.ID, UserID: bob.ID, Content: "se ve rica"}
	require.NoError(t, db.Create(comment).Error)

	// 标题和正文都能命中，不区分大小写，最新在前，带评论
	posts, err := repo.Search("TORTILLA")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "cena de hoy", posts[0].Title)
	assert.Equal(t, "Receta de Tortilla", posts[1].Title)
	require.Len(t, posts[1].Comments, 1)
	assert.Equal(t, "bob", posts[1].Comments[0].Author.Name)

	posts, err = repo.Search("montaña")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestUpdatePostOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post := &model.Post{UserID: alice.ID, Title: "hola", Content: "v1"}
	require.NoError(t, repo.Create(post))

	_, err := repo.Update(post.ID, bob.ID, "v2")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	updated, err := repo.Update(post.ID, alice.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)
}

func TestDeletePostCascadesComments(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post := &model.Post{UserID: alice.ID, Title: "hola", Content: "x", ImageURL: "/uploads/posts/p.jpg"}
	require.NoError(t, postRepo.Create(post))

	comment := &model.Comment{PostID: post.ID, UserID: bob.ID, Content: "buen post"}
	require.NoError(t, commentRepo.Create(comment))

	// 非作者不能删除
	_, err := postRepo.Delete(post.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	imageURL, err := postRepo.Delete(post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/posts/p.jpg", imageURL)

	var comments int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)
}

func TestCommentOnMissingPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	alice := createUser(t, db, "alice")

	err := repo.Create(&model.Comment{PostID: "missing", UserID: alice.ID, Content: "?"})
	assert.ErrorIs(t, err, util.ErrPostNotFound)
}

func TestCommentsOrderedOldestFirst(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)

	alice := createUser(t, db, "alice")

	post := &model.Post{UserID: alice.ID, Title: "hola", Content: "x"}
	require.NoError(t, postRepo.Create(post))

	c1 := &model.Comment{PostID: post.ID, UserID: alice.ID, Content: "primero"}
	require.NoError(t, commentRepo.Create(c1))
	c2 := &model.Comment{PostID: post.ID, UserID: alice.ID, Content: "segundo"}
	require.NoError(t, commentRepo.Create(c2))
	require.NoError(t, db.Model(c1).Update("created_at", time.Now().Add(-time.Minute)).Error)

	loaded, err := postRepo.FindByID(post.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 2)
	assert.Equal(t, "primero", loaded.Comments[0].Content)
	assert.Equal(t, "segundo", loaded.Comments[1].Content)
}

func TestUpdateAndDeleteComment(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post := &model.Post{UserID: alice.ID, Title: "hola", Content: "x"}
	require.NoError(t, postRepo.Create(post))

	comment := &model.Comment{PostID: post.ID, UserID: bob.ID, Content: "v1"}
	require.NoError(t, commentRepo.Create(comment))

	_, err := commentRepo.Update(comment.ID, alice.ID, "v2")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	updated, err := commentRepo.Update(comment.ID, bob.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	assert.ErrorIs(t, commentRepo.Delete(comment.ID, alice.ID), util.ErrPermissionDenied)
	require.NoError(t, commentRepo.Delete(comment.ID, bob.ID))
	assert.ErrorIs(t, commentRepo.Delete(comment.ID, bob.ID), util.ErrCommentNotFound)
}

func TestUserDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	post := &model.Post{UserID: alice.ID, Title: "hola", Content: "x"}
	require.NoError(t, postRepo.Create(post))
	require.NoError(t, commentRepo.Create(&model.Comment{PostID: post.ID, UserID: bob.ID, Content: "c"}))

	require.NoError(t, userRepo.Delete(alice.ID))

	var posts, comments, friendships int64
	require.NoError(t, db.Model(&model.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&model.Comment{}).Count(&comments).Error)
	require.NoError(t, db.Model(&model.Friendship{}).Count(&friendships).Error)
	assert.Zero(t, posts)
	assert.Zero(t, comments)
	assert.Zero(t, friendships)

	_, err := userRepo.FindByID(alice.ID)
	assert.Error(t, err)
}

func TestGetCommentedPosts(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	p1 := &model.Post{UserID: alice.ID, Title: "uno", Content: "a"}
	require.NoError(t, postRepo.Create(p1))
	p2 := &model.Post{UserID: alice.ID, Title: "dos", Content: "b"}
	require.NoError(t, postRepo.Create(p2))

	// bob 在 p1 上评论两次，结果不应重复
	require.NoError(t, commentRepo.Create(&model.Comment{PostID: p1.ID, UserID: bob.ID, Content: "1"}))
	require.NoError(t, commentRepo.Create(&model.Comment{PostID: p1.ID, UserID: bob.ID, Content: "2"}))

	posts, err := userRepo.GetCommentedPosts(bob.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, p1.ID, posts[0].ID)
}
