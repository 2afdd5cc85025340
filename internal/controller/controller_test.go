package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"post_place_backend/internal/config"
	"post_place_backend/internal/middleware"
	"post_place_backend/internal/model"
	"post_place_backend/internal/repository"
	"post_place_backend/internal/service"
	"post_place_backend/pkg/logger"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// stubPublisher 记录广播过的事件，替代真实的 WebSocket 集线器
type stubPublisher struct {
	mu     sync.Mutex
	events []service.Event
}

func (p *stubPublisher) Broadcast(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, service.Event{Type: event, Data: data})
}

func (p *stubPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	router *gin.Engine
	pub    *stubPublisher
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Friendship{},
		&model.FriendRequest{},
		&model.Group{},
		&model.GroupMember{},
		&model.Interest{},
		&model.UserInterest{},
	))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db, nil)
	groupRepo := repository.NewGroupRepository(db)
	interestRepo := repository.NewInterestRepository(db)

	storage := service.NewStorageService(cfg)
	pub := &stubPublisher{}

	authCtrl := NewAuthController(service.NewAuthService(userRepo, cfg))
	userCtrl := NewUserController(service.NewUserService(userRepo))
	postCtrl := NewPostController(service.NewPostService(postRepo, commentRepo, storage), pub)
	friendshipCtrl := NewFriendshipController(service.NewFriendshipService(friendshipRepo, userRepo), pub)
	groupCtrl := NewGroupController(service.NewGroupService(groupRepo), pub)
	interestCtrl := NewInterestController(service.NewInterestService(interestRepo))

	router := gin.New()

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
	}

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/auth/me", authCtrl.Me)
		api.PUT("/users/me", userCtrl.UpdateProfile)
		api.DELETE("/users/me", userCtrl.DeleteAccount)
		api.GET("/users/me/commented-posts", userCtrl.GetCommentedPosts)

		api.GET("/posts", postCtrl.ListPosts)
		api.POST("/posts", postCtrl.CreatePost)
		api.GET("/posts/:id", postCtrl.GetPost)
		api.PUT("/posts/:id", postCtrl.UpdatePost)
		api.DELETE("/posts/:id", postCtrl.DeletePost)
		api.POST("/posts/:id/comments", postCtrl.AddComment)

		api.GET("/friends", friendshipCtrl.GetFriends)
		api.POST("/friends/requests", friendshipCtrl.SendRequest)
		api.GET("/friends/requests/pending", friendshipCtrl.GetPendingRequests)
		api.POST("/friends/requests/:senderId/accept", friendshipCtrl.AcceptRequest)
		api.POST("/friends/requests/:senderId/reject", friendshipCtrl.RejectRequest)
		api.DELETE("/friends/:friendId", friendshipCtrl.RemoveFriend)
		api.GET("/friends/status/:userId", friendshipCtrl.GetStatus)

		api.POST("/groups", groupCtrl.CreateGroup)
		api.GET("/groups", groupCtrl.ListGroups)
		api.POST("/groups/:id/members", groupCtrl.AddMember)

		api.GET("/interests", interestCtrl.ListCatalog)
		api.POST("/interests/mine", interestCtrl.AddInterest)
		api.GET("/interests/recommendations", interestCtrl.GetRecommendations)
	}

	return &testEnv{router: router, pub: pub, db: db}
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	return e.do(t, method, path, token, body, "application/json")
}

// register 注册用户并返回 ID 和令牌
func (e *testEnv) register(t *testing.T, name string) (uint, string) {
	t.Helper()

	w, resp := e.doJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    fmt.Sprintf("%s@example.com", name),
		"password": "secreto123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.User.ID, data.Token
}

func TestRegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.register(t, "alice")

	w, resp := env.do(t, http.MethodGet, "/api/auth/me", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var me model.User
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, "alice", me.Name)

	// 密码不出现在响应里
	assert.NotContains(t, string(resp.Data), "secreto123")
	assert.NotContains(t, string(resp.Data), `"password"`)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodGet, "/api/posts", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(t, http.MethodGet, "/api/posts", "garbage-token", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFriendRequestFlow(t *testing.T) {
	env := newTestEnv(t)

	aliceID, aliceToken := env.register(t, "alice")
	bobID, bobToken := env.register(t, "bob")

	// alice 向 bob 发申请
	w, _ := env.doJSON(t, http.MethodPost, "/api/friends/requests", aliceToken, gin.H{
		"receiverId": bobID,
		"message":    "hola bob",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 重复发送冲突
	w, _ = env.doJSON(t, http.MethodPost, "/api/friends/requests", aliceToken, gin.H{"receiverId": bobID})
	assert.Equal(t, http.StatusConflict, w.Code)

	// bob 看到待处理申请
	w, resp := env.do(t, http.MethodGet, "/api/friends/requests/pending", bobToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var pending []model.FriendRequest
	require.NoError(t, json.Unmarshal(resp.Data, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "hola bob", pending[0].Message)

	// bob 接受
	w, _ = env.do(t, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d/accept", aliceID), bobToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	// 双方的关系状态都是 friends
	w, resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", bobID), aliceToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), string(model.StatusFriends))

	// alice 的好友列表包含 bob
	w, resp = env.do(t, http.MethodGet, "/api/friends", aliceToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var friends []model.User
	require.NoError(t, json.Unmarshal(resp.Data, &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, bobID, friends[0].ID)

	assert.Equal(t, []string{"new_friend_request", "friend_request_accepted"}, env.pub.types())

	// 删除好友后状态回到无关系
	w, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/api/friends/%d", bobID), aliceToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", aliceID), bobToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), string(model.StatusUnrelated))
}

func postForm(t *testing.T, fields map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestPostAndCommentFlow(t *testing.T) {
	env := newTestEnv(t)

	_, aliceToken := env.register(t, "alice")
	_, bobToken := env.register(t, "bob")

	body, contentType := postForm(t, map[string]string{
		"title":   "primer post",
		"content": "hola mundo",
	})
	w, resp := env.do(t, http.MethodPost, "/api/posts", aliceToken, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code)

	var post model.Post
	require.NoError(t, json.Unmarshal(resp.Data, &post))
	require.NotEmpty(t, post.ID)
	assert.Equal(t, "alice", post.Author.Name)

	// bob 评论
	w, _ = env.doJSON(t, http.MethodPost, "/api/posts/"+post.ID+"/comments", bobToken, gin.H{"content": "buen post"})
	require.Equal(t, http.StatusCreated, w.Code)

	// 详情带上评论
	w, resp = env.do(t, http.MethodGet, "/api/posts/"+post.ID, bobToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var loaded model.Post
	require.NoError(t, json.Unmarshal(resp.Data, &loaded))
	require.Len(t, loaded.Comments, 1)
	assert.Equal(t, "buen post", loaded.Comments[0].Content)

	// bob 不能改 alice 的帖子
	w, _ = env.doJSON(t, http.MethodPut, "/api/posts/"+post.ID, bobToken, gin.H{"content": "hackeado"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// alice 删除自己的帖子
	w, _ = env.do(t, http.MethodDelete, "/api/posts/"+post.ID, aliceToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(t, http.MethodGet, "/api/posts/"+post.ID, aliceToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, []string{"new_post", "new_comment", "post_deleted"}, env.pub.types())
}

func TestGroupMembershipOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	aliceID, aliceToken := env.register(t, "alice")
	bobID, bobToken := env.register(t, "bob")
	carolID, _ := env.register(t, "carol")

	// alice 和 bob 成为好友
	w, _ := env.doJSON(t, http.MethodPost, "/api/friends/requests", aliceToken, gin.H{"receiverId": bobID})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = env.do(t, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d/accept", aliceID), bobToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := env.doJSON(t, http.MethodPost, "/api/groups", aliceToken, gin.H{"name": "senderismo"})
	require.Equal(t, http.StatusCreated, w.Code)
	var group model.Group
	require.NoError(t, json.Unmarshal(resp.Data, &group))

	// 好友可以入群
	w, _ = env.doJSON(t, http.MethodPost, "/api/groups/"+group.ID+"/members", aliceToken, gin.H{"userId": bobID})
	require.Equal(t, http.StatusOK, w.Code)

	// 非好友不行
	w, _ = env.doJSON(t, http.MethodPost, "/api/groups/"+group.ID+"/members", aliceToken, gin.H{"userId": carolID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 普通成员没有拉人权限
	w, _ = env.doJSON(t, http.MethodPost, "/api/groups/"+group.ID+"/members", bobToken, gin.H{"userId": carolID})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInterestRecommendationsOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.db.Create(&model.Interest{Name: "Rock", Category: "Música", Emoji: "🎸"}).Error)

	_, aliceToken := env.register(t, "alice")
	bobID, bobToken := env.register(t, "bob")

	for _, token := range []string{aliceToken, bobToken} {
		w, _ := env.doJSON(t, http.MethodPost, "/api/interests/mine", token, gin.H{"name": "Rock"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// 不在目录里的兴趣
	w, _ := env.doJSON(t, http.MethodPost, "/api/interests/mine", aliceToken, gin.H{"name": "Esgrima"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp := env.do(t, http.MethodGet, "/api/interests/recommendations", aliceToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var recs []repository.Recommendation
	require.NoError(t, json.Unmarshal(resp.Data, &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, bobID, recs[0].UserID)
	assert.Equal(t, []string{"Rock"}, recs[0].SharedInterests)
}

func TestDeleteAccountOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	_, aliceToken := env.register(t, "alice")

	body, contentType := postForm(t, map[string]string{"title": "t", "content": "c"})
	w, _ := env.do(t, http.MethodPost, "/api/posts", aliceToken, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = env.do(t, http.MethodDelete, "/api/users/me", aliceToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	// 帖子随账号一起删除
	var posts int64
	require.NoError(t, env.db.Model(&model.Post{}).Count(&posts).Error)
	assert.Zero(t, posts)
}
