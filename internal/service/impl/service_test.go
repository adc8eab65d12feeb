package impl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debook/engagement/internal/entities"
	"github.com/debook/engagement/internal/events"
	servicemock "github.com/debook/engagement/internal/service/mock"
	"github.com/debook/engagement/internal/storage"
	storagemock "github.com/debook/engagement/internal/storage/mock"
)

func TestSrv_GetPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storagemock.NewMockStorage(ctrl)
	p := servicemock.NewMockPublisher(ctrl)

	srv := New(s, p)

	timestamp := time.Unix(100, 0)

	s.EXPECT().GetPost(gomock.Any(), "post").Return(&entities.Post{
		ID:        "post",
		Content:   "content",
		AuthorID:  "author",
		CreatedAt: timestamp,
		UpdatedAt: timestamp,
	}, nil)
	s.EXPECT().CountLikes(gomock.Any(), "post").Return(uint32(2), nil)
	s.EXPECT().CountComments(gomock.Any(), "post").Return(uint32(3), nil)

	v, err := srv.GetPost(context.Background(), "post")
	require.NoError(t, err)
	assert.Equal(t, &entities.PostView{
		Post: entities.Post{
			ID:        "post",
			Content:   "content",
			AuthorID:  "author",
			CreatedAt: timestamp,
			UpdatedAt: timestamp,
		},
		LikesCount:    2,
		CommentsCount: 3,
	}, v)
}

func TestSrv_GetPost_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storagemock.NewMockStorage(ctrl)
	p := servicemock.NewMockPublisher(ctrl)

	srv := New(s, p)

	s.EXPECT().GetPost(gomock.Any(), "post").Return(nil, storage.ErrNotFound)

	v, err := srv.GetPost(context.Background(), "post")
	require.True(t, errors.Is(err, storage.ErrNotFound))
	require.Nil(t, v)
}

func TestSrv_GetPost_CountFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storagemock.NewMockStorage(ctrl)
	p := servicemock.NewMockPublisher(ctrl)

	srv := New(s, p)

	s.EXPECT().GetPost(gomock.Any(), "post").Return(&entities.Post{ID: "post"}, nil)
	s.EXPECT().CountLikes(gomock.Any(), "post").Return(uint32(0), context.Canceled)
	s.EXPECT().CountComments(gomock.Any(), "post").Return(uint32(1), nil).AnyTimes()

	v, err := srv.GetPost(context.Background(), "post")
	require.True(t, errors.Is(err, context.Canceled))
	require.Nil(t, v)
}

func TestSrv_CreateLike(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storagemock.NewMockStorage(ctrl)
	p := servicemock.NewMockPublisher(ctrl)

	srv := New(s, p)

	s.EXPECT().GetPost(gomock.Any(), "post").Return(&entities.Post{
		ID:       "post",
		AuthorID: "author",
	}, nil)

	s.EXPECT().CreateLike(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, l *storage.CreateLikeParams) error {
			assert.NotEmpty(t, l.ID)
			assert.Equal(t, "post", l.PostID)
			assert.Equal(t, "user", l.UserID)
			assert.False(t, l.CreatedAt.IsZero())
			return nil
		})

	p.EXPECT().Publish(events.LikeCreated, events.LikeCreatedEvent{
		PostID:       "post",
		UserID:       "user",
		PostAuthorID: "author",
	})

	alreadyLiked, err := srv.CreateLike(context.Background(), "post", "user")
	require.NoError(t, err)
	require.False(t, alreadyLiked)
}

func TestSrv_CreateLike_AlreadyLiked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storagemock.NewMockStorage(ctrl)
	p := servicemock.NewMockPublisher(ctrl)

	srv := New(s, p)

	s.EXPECT().GetPost(gomock.Any(), "post").Return(&entities.Post{ID: "post"}, nil)
	s.EXPECT().CreateLike(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	// the duplicate is a success and must not produce an event
	alreadyLiked, err := srv.CreateLike(context.Background(), "post", "user")
	require.NoError(t, err)
	require.True(t, alreadyLiked)
}

func TestSrv_CreateLike_PostNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storagemock.NewMockStorage(ctrl)
	p := servicemock.NewMockPublisher(ctrl)

	srv := New(s, p)

	s.EXPECT().GetPost(gomock.Any(), "post").Return(nil, storage.ErrNotFound)

	alreadyLiked, err := srv.CreateLike(context.Background(), "post", "user")
	require.True(t, errors.Is(err, storage.ErrNotFound))
	require.False(t, alreadyLiked)
}

func TestSrv_CreateLike_StorageFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storagemock.NewMockStorage(ctrl)
	p := servicemock.NewMockPublisher(ctrl)

	srv := New(s, p)

	s.EXPECT().GetPost(gomock.Any(), "post").Return(&entities.Post{ID: "post"}, nil)
	s.EXPECT().CreateLike(gomock.Any(), gomock.Any()).Return(context.Canceled)

	alreadyLiked, err := srv.CreateLike(context.Background(), "post", "user")
	require.True(t, errors.Is(err, context.Canceled))
	require.False(t, alreadyLiked)
}

func TestSrv_CreatePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storagemock.NewMockStorage(ctrl)
	p := servicemock.NewMockPublisher(ctrl)

	srv := New(s, p)

	s.EXPECT().CreatePost(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p *storage.CreatePostParams) error {
			assert.NotEmpty(t, p.ID)
			assert.Equal(t, "content", p.Content)
			assert.Equal(t, "author", p.AuthorID)
			return nil
		})

	post, err := srv.CreatePost(context.Background(), "content", "author")
	require.NoError(t, err)
	require.Equal(t, "content", post.Content)
	require.Equal(t, "author", post.AuthorID)
	require.NotEmpty(t, post.ID)
}

// uniqueStorage imitates the storage uniqueness constraint on (post, user) so
// the registrar can be raced without a database.
type uniqueStorage struct {
	storage.Storage

	mu    sync.Mutex
	likes map[string]struct{}
}

func (s *uniqueStorage) GetPost(_ context.Context, id string) (*entities.Post, error) {
	return &entities.Post{ID: id, AuthorID: "author"}, nil
}

func (s *uniqueStorage) CreateLike(_ context.Context, l *storage.CreateLikeParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := l.PostID + "/" + l.UserID
	if _, ok := s.likes[k]; ok {
		return storage.ErrAlreadyExists
	}
	s.likes[k] = struct{}{}

	return nil
}

type countingPublisher struct {
	mu    sync.Mutex
	count int
}

func (p *countingPublisher) Publish(string, interface{}) {
	p.mu.Lock()
	p.count++
	p.mu.Unlock()
}

func TestSrv_CreateLike_Concurrent(t *testing.T) {
	s := &uniqueStorage{likes: map[string]struct{}{}}
	p := &countingPublisher{}

	srv := New(s, p)

	const n = 32

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		dups    int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			alreadyLiked, err := srv.CreateLike(context.Background(), "post", "user")
			require.NoError(t, err)

			mu.Lock()
			if alreadyLiked {
				dups++
			} else {
				created++
			}
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, dups)
	assert.Equal(t, 1, p.count)
	assert.Len(t, s.likes, 1)
}
