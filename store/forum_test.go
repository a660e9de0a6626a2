package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForumPostsAndComments(t *testing.T) {
	s := newTestStore()
	author := addCitizen(s, "Asha")
	replier := addCitizen(s, "Bala")

	post := s.AddPost(author.ID, "Clean-up drive this Sunday", "Meet at the panchayat office at 7am.")
	require.NotZero(t, post.ID)

	_, err := s.AddComment(999, replier.ID, "count me in")
	assert.ErrorIs(t, err, ErrNotFound)

	comment, err := s.AddComment(post.ID, replier.ID, "Count me in!")
	require.NoError(t, err)

	comments := s.CommentsForPost(post.ID)
	require.Len(t, comments, 1)
	assert.Equal(t, "Count me in!", comments[0].Content)

	posts := s.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)

	// Comment votes follow the same one-per-account rule as issues.
	upvotes, voted, err := s.VoteComment(author.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, voted)
	assert.Equal(t, 1, upvotes)

	upvotes, voted, err = s.VoteComment(author.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, voted)
	assert.Equal(t, 1, upvotes)
}
