package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"miniblog/middleware"
	"miniblog/models"
	"miniblog/utils"
)

const (
	postListCacheKey      = "cache:posts:list"
	postDetailCachePrefix = "cache:post:detail:"
)

// PostController manages CRUD operations for posts. Reads are public;
// mutations require the authenticated identity set by the auth middleware,
// and update/delete additionally require ownership.
type PostController struct {
	db    *gorm.DB
	cache *utils.Cache
}

// NewPostController creates a PostController; cache may be nil.
func NewPostController(db *gorm.DB, cache *utils.Cache) *PostController {
	return &PostController{db: db, cache: cache}
}

// ListPosts returns all posts, newest first, each with the author resolved.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if b, ok := p.cache.GetBytes(postListCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	var posts []models.Post
	if err := p.db.Preload("User").Order("create_date DESC").Find(&posts).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	p.cache.SetJSON(postListCacheKey, posts, time.Hour)
	ctx.JSON(http.StatusOK, posts)
}

// GetPost returns a single post with its author resolved.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}
	idStr := strconv.FormatUint(uint64(id), 10)

	if b, ok := p.cache.GetBytes(postDetailCachePrefix + idStr); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	var post models.Post
	if err := p.db.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Msg(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	p.cache.SetJSON(postDetailCachePrefix+idStr, post, time.Hour)
	ctx.JSON(http.StatusOK, post)
}

// CreatePost creates a post owned by the authenticated user.
func (p *PostController) CreatePost(ctx *gin.Context) {
	title, body, ok := bindPostPayload(ctx)
	if !ok {
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Msg(ctx, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	post := models.Post{
		UserID: userID,
		Title:  title,
		Body:   body,
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	// Reload with the author populated before returning.
	if err := p.db.Preload("User").First(&post, post.ID).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	p.cache.InvalidateByPrefix(postListCacheKey)

	ctx.JSON(http.StatusOK, post)
}

// UpdatePost lets the owner change a post's title and body.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	title, body, ok := bindPostPayload(ctx)
	if !ok {
		return
	}

	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Msg(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Msg(ctx, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	if post.UserID != userID {
		utils.Msg(ctx, http.StatusUnauthorized, "User not authorized")
		return
	}

	post.Title = title
	post.Body = body
	if err := p.db.Save(&post).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	if err := p.db.Preload("User").First(&post, post.ID).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	p.cache.InvalidateByPrefix(postListCacheKey)
	p.cache.InvalidateByPrefix(postDetailCachePrefix + strconv.FormatUint(uint64(post.ID), 10))

	ctx.JSON(http.StatusOK, post)
}

// DeletePost lets the owner remove a post.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var post models.Post
	if err := p.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Msg(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Msg(ctx, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	if post.UserID != userID {
		utils.Msg(ctx, http.StatusUnauthorized, "User not authorized")
		return
	}

	if err := p.db.Delete(&post).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	p.cache.InvalidateByPrefix(postListCacheKey)
	p.cache.InvalidateByPrefix(postDetailCachePrefix + strconv.FormatUint(uint64(post.ID), 10))

	utils.Msg(ctx, http.StatusOK, "Post removed")
}

// bindPostPayload validates and sanitizes the shared create/update payload.
// A title or body that is empty after sanitization counts as missing.
func bindPostPayload(ctx *gin.Context) (title, body string, ok bool) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, utils.BindingErrors(err, map[string]string{
			"Title": "Title is required",
			"Body":  "Body is required",
		}, "Invalid request payload"))
		return "", "", false
	}

	title = strings.TrimSpace(utils.Sanitize(req.Title))
	body = strings.TrimSpace(utils.Sanitize(req.Body))

	var errs []utils.FieldError
	if title == "" {
		errs = append(errs, utils.FieldError{Msg: "Title is required"})
	}
	if body == "" {
		errs = append(errs, utils.FieldError{Msg: "Body is required"})
	}
	if len(errs) > 0 {
		utils.ValidationFailed(ctx, errs)
		return "", "", false
	}

	return title, body, true
}

// parsePostID treats a structurally invalid id the same as a missing record.
func parsePostID(ctx *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(ctx.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.Msg(ctx, http.StatusNotFound, "Post not found")
		return 0, false
	}
	return uint(id), true
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
