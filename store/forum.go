package store

import (
	"civicguard-be/models"
)

// AddPost publishes a new forum post.
func (s *Store) AddPost(authorID int64, title, content string) *models.ForumPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	post := &models.ForumPost{
		ID:        s.nextID(),
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		CreatedAt: s.now(),
	}
	s.posts = append([]*models.ForumPost{post}, s.posts...)
	s.notify("New forum post: %s", post.Title)
	cp := *post
	return &cp
}

// Posts returns all forum posts, newest first.
func (s *Store) Posts() []*models.ForumPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ForumPost, 0, len(s.posts))
	for _, post := range s.posts {
		cp := *post
		out = append(out, &cp)
	}
	return out
}

// GetPost looks a post up by id.
func (s *Store) GetPost(id int64) (*models.ForumPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, post := range s.posts {
		if post.ID == id {
			cp := *post
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// AddComment appends a reply to a post.
func (s *Store) AddComment(postID, authorID int64, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, post := range s.posts {
		if post.ID == postID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}

	comment := &models.Comment{
		ID:        s.nextID(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: s.now(),
	}
	s.comments = append(s.comments, comment)
	cp := *comment
	return &cp, nil
}

// CommentsForPost returns the replies on one post, oldest first.
func (s *Store) CommentsForPost(postID int64) []*models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID == postID {
			cp := *comment
			out = append(out, &cp)
		}
	}
	return out
}

// VoteComment upvotes a comment once per session; repeats are no-ops.
func (s *Store) VoteComment(userID, commentID int64) (upvotes int, voted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *models.Comment
	for _, comment := range s.comments {
		if comment.ID == commentID {
			target = comment
			break
		}
	}
	if target == nil {
		return 0, false, ErrNotFound
	}

	set, ok := s.votedComments[userID]
	if !ok {
		set = make(map[int64]struct{})
		s.votedComments[userID] = set
	}
	if _, already := set[commentID]; already {
		return target.Upvotes, false, nil
	}
	set[commentID] = struct{}{}
	target.Upvotes++
	return target.Upvotes, true, nil
}
