package commentservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/sushihentaime/postly/internal/common"
)

func NewCommentService(db *sql.DB, mb common.MessageProducer, refs common.RefPolicy, logger CommentLogger) *CommentService {
	return &CommentService{m: newCommentModel(db), mb: mb, refs: refs, logger: logger}
}

// GetCommentsByPostId returns all comments for a post, oldest first, with
// each author resolved to a username. The post id only has to be
// well-formed: listing comments for a post that does not exist yields an
// empty list, not an error.
func (s *CommentService) GetCommentsByPostId(ctx context.Context, postId string) ([]Comment, error) {
	v := common.NewValidator()
	common.ValidateID(v, "post_id", postId)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCommentsByPostId(ctx, postId)
}

type CreateCommentRequest struct {
	PostID  string `json:"post_id"`
	UserID  string `json:"-"`
	Content string `json:"content"`
}

// CreateComment attaches a comment to a post. The post reference passes
// through the RefPolicy, which by default checks the format only, so a
// comment on a since-deleted post is accepted. After the write a
// comment.created event is published; a broker failure is logged and never
// fails the request.
func (s *CommentService) CreateComment(ctx context.Context, req *CreateCommentRequest) (*Comment, error) {
	v := common.NewValidator()
	s.refs.CheckRef(v, "post_id", req.PostID)
	common.ValidateID(v, "user_id", req.UserID)
	validateContent(v, req.Content)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment := Comment{
		ID:      common.NewID(),
		PostID:  req.PostID,
		Content: strings.TrimSpace(req.Content),
	}
	comment.User.ID = req.UserID

	err := s.m.insert(ctx, &comment)
	if err != nil {
		return nil, err
	}

	username, err := s.m.getUsername(ctx, comment.User.ID)
	if err != nil {
		return nil, err
	}
	comment.User.Username = username

	s.publishCreated(ctx, &comment)

	return &comment, nil
}

// DeleteComment deletes a comment. Only the comment's author may do so;
// there is no elevated role that overrides the check.
func (s *CommentService) DeleteComment(ctx context.Context, id, userId string) error {
	v := common.NewValidator()
	common.ValidateID(v, "id", id)
	common.ValidateID(v, "user_id", userId)
	if !v.Valid() {
		return v.ValidationError()
	}

	comment, err := s.m.getCommentById(ctx, id)
	if err != nil {
		return err
	}

	if comment.User.ID != userId {
		return ErrNotPermitted
	}

	return s.m.deleteComment(ctx, id)
}

func (s *CommentService) publishCreated(ctx context.Context, comment *Comment) {
	msg, err := json.Marshal(comment)
	if err != nil {
		s.logger.Error("could not marshal comment event", slog.String("error", err.Error()))
		return
	}

	err = s.mb.Publish(ctx, msg, common.CommentCreatedKey, common.ContentExchange)
	if err != nil {
		s.logger.Error("could not publish comment event", slog.String("comment_id", comment.ID), slog.String("error", err.Error()))
	}
}
