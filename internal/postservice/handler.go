package postservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sushihentaime/postly/internal/common"
)

func NewPostService(db *sql.DB, c *common.Cache, refs common.RefPolicy) *PostService {
	return &PostService{m: newPostModel(db), c: c, refs: refs}
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	// ImagePath is the reference returned by the media store. The service
	// never sees the uploaded bytes.
	ImagePath string `json:"-"`
}

// CreatePost creates a new post. The category reference is checked by the
// configured RefPolicy; validation collects every violated field before
// anything is written.
func (s *PostService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
	s.refs.CheckRef(v, "category", req.Category)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := Post{
		ID:            common.NewID(),
		Title:         strings.TrimSpace(req.Title),
		Content:       strings.TrimSpace(req.Content),
		FeaturedImage: req.ImagePath,
	}
	post.Category.ID = req.Category

	err := s.m.insert(ctx, &post)
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// GetPostByID returns a post with its category resolved to the embedded
// object.
func (s *PostService) GetPostByID(ctx context.Context, id string) (*Post, error) {
	v := common.NewValidator()
	common.ValidateID(v, "id", id)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyPost(id)); ok {
		if post, ok := cached.(*Post); ok {
			return post, nil
		}
	}

	post, err := s.m.getPostById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyPost(id), post)

	return post, nil
}

// GetPosts returns one page of posts together with the pagination metadata.
func (s *PostService) GetPosts(ctx context.Context, f common.Filters) ([]Post, common.Metadata, error) {
	return s.m.getPosts(ctx, f)
}

type UpdatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	// ImagePath replaces the stored image reference when non-empty.
	ImagePath string `json:"-"`
}

// UpdatePost applies a partial update. Each supplied field is validated with
// the same rule as on create; supplying no fields and no new image is a
// legal no-op that returns the unchanged post. Any authenticated caller may
// update any post: unlike comment deletion there is no ownership check here.
// That asymmetry is part of the public contract.
func (s *PostService) UpdatePost(ctx context.Context, id string, req *UpdatePostRequest) (*Post, error) {
	v := common.NewValidator()
	common.ValidateID(v, "id", id)
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Content != nil {
		validateContent(v, *req.Content)
	}
	if req.Category != nil {
		s.refs.CheckRef(v, "category", *req.Category)
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post, err := s.m.getPostById(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		post.Content = strings.TrimSpace(*req.Content)
	}
	if req.Category != nil {
		post.Category.ID = *req.Category
		post.Category.Name = ""
	}
	if req.ImagePath != "" {
		post.FeaturedImage = req.ImagePath
	}

	err = s.m.update(ctx, post)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyPost(id))

	// re-read so a changed category reference comes back resolved
	return s.m.getPostById(ctx, id)
}

// DeletePost deletes a post unconditionally. As with UpdatePost, no
// ownership check is applied.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	v := common.NewValidator()
	common.ValidateID(v, "id", id)
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.deletePost(ctx, id)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyPost(id))

	return nil
}
