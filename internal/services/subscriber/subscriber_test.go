package subscriber

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/oforha-backend/internal/events"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/storage/repository"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) SaveSubscriber(ctx context.Context, sub *models.Subscriber) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *RepoMock) GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}

func (m *RepoMock) ListSubscribers(ctx context.Context, status models.SubscriberStatus, page, perPage int) ([]*models.Subscriber, error) {
	args := m.Called(ctx, status, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscriber), args.Error(1)
}

func (m *RepoMock) CountSubscribers(ctx context.Context, status models.SubscriberStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type recorder struct {
	keys []string
}

func (r *recorder) Publish(_ context.Context, routingKey string, _ any) error {
	r.keys = append(r.keys, routingKey)
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubscribe_New(t *testing.T) {
	repo := new(RepoMock)
	rec := &recorder{}
	repo.On("GetSubscriberByEmail", mock.Anything, "a@b.com").Return(nil, repository.ErrNotFound).Once()
	repo.On("SaveSubscriber", mock.Anything, mock.MatchedBy(func(s *models.Subscriber) bool {
		return s.Email == "a@b.com" && s.IsActive() && s.Name != nil && *s.Name == "Ann"
	})).Return(nil).Once()

	sub, outcome, err := New(newNoopLogger(), repo, rec).Subscribe(context.Background(), "a@b.com", "Ann")
	require.NoError(t, err)
	assert.Equal(t, Created, outcome)
	assert.Equal(t, "a@b.com", sub.Email)
	assert.Equal(t, []string{events.SubscriberSubscribed}, rec.keys)
	repo.AssertExpectations(t)
}

func TestSubscribe_AlreadyActive(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriberByEmail", mock.Anything, "a@b.com").Return(models.NewSubscriber("a@b.com", ""), nil).Once()

	_, _, err := New(newNoopLogger(), repo, events.Noop{}).Subscribe(context.Background(), "a@b.com", "")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
	repo.AssertNotCalled(t, "SaveSubscriber", mock.Anything, mock.Anything)
}

func TestSubscribe_ReactivatesWithoutNewRecord(t *testing.T) {
	for _, status := range []models.SubscriberStatus{models.StatusUnsubscribed, models.StatusBounced} {
		t.Run(string(status), func(t *testing.T) {
			existing := models.NewSubscriber("a@b.com", "")
			existing.Unsubscribe()
			existing.Status = status
			id := existing.ID

			repo := new(RepoMock)
			rec := &recorder{}
			repo.On("GetSubscriberByEmail", mock.Anything, "a@b.com").Return(existing, nil).Once()
			repo.On("SaveSubscriber", mock.Anything, mock.MatchedBy(func(s *models.Subscriber) bool {
				return s.ID == id && s.IsActive() && s.UnsubscribedAt == nil
			})).Return(nil).Once()

			sub, outcome, err := New(newNoopLogger(), repo, rec).Subscribe(context.Background(), "a@b.com", "")
			require.NoError(t, err)
			assert.Equal(t, Reactivated, outcome)
			assert.Equal(t, id, sub.ID)
			assert.Equal(t, []string{events.SubscriberResubscribed}, rec.keys)
			repo.AssertExpectations(t)
		})
	}
}

func TestSubscribe_StorageError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriberByEmail", mock.Anything, "a@b.com").Return(nil, errors.New("db error")).Once()

	_, _, err := New(newNoopLogger(), repo, events.Noop{}).Subscribe(context.Background(), "a@b.com", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "services.subscriber.Subscribe")
}

func TestUnsubscribe(t *testing.T) {
	existing := models.NewSubscriber("a@b.com", "")
	repo := new(RepoMock)
	rec := &recorder{}
	repo.On("GetSubscriberByEmail", mock.Anything, "a@b.com").Return(existing, nil).Twice()
	repo.On("GetSubscriberByEmail", mock.Anything, "x@y.com").Return(nil, repository.ErrNotFound).Once()
	repo.On("SaveSubscriber", mock.Anything, existing).Return(nil).Twice()

	svc := New(newNoopLogger(), repo, rec)
	require.NoError(t, svc.Unsubscribe(context.Background(), "a@b.com"))
	assert.Equal(t, models.StatusUnsubscribed, existing.Status)
	assert.NotNil(t, existing.UnsubscribedAt)

	require.NoError(t, svc.Unsubscribe(context.Background(), "a@b.com"))
	assert.ErrorIs(t, svc.Unsubscribe(context.Background(), "x@y.com"), ErrSubscriberNotFound)
	assert.Len(t, rec.keys, 2)
	repo.AssertExpectations(t)
}

func TestList(t *testing.T) {
	repo := new(RepoMock)
	subs := []*models.Subscriber{models.NewSubscriber("a@b.com", "")}
	repo.On("ListSubscribers", mock.Anything, models.StatusActive, 2, 5).Return(subs, nil).Once()
	repo.On("CountSubscribers", mock.Anything, models.StatusActive).Return(int64(6), nil).Once()

	page, err := New(newNoopLogger(), repo, events.Noop{}).List(context.Background(), models.StatusActive, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, subs, page.Subscribers)
	assert.Equal(t, int64(6), page.Total)
}

func TestBulkSubscribe(t *testing.T) {
	active := models.NewSubscriber("active@b.com", "")
	inactive := models.NewSubscriber("gone@b.com", "")
	inactive.Unsubscribe()

	repo := new(RepoMock)
	repo.On("GetSubscriberByEmail", mock.Anything, "new@b.com").Return(nil, repository.ErrNotFound).Once()
	repo.On("GetSubscriberByEmail", mock.Anything, "active@b.com").Return(active, nil).Once()
	repo.On("GetSubscriberByEmail", mock.Anything, "gone@b.com").Return(inactive, nil).Once()
	repo.On("SaveSubscriber", mock.Anything, mock.Anything).Return(nil).Twice()

	rec := &recorder{}
	count, err := New(newNoopLogger(), repo, rec).BulkSubscribe(context.Background(),
		[]string{"new@b.com", "active@b.com", "gone@b.com", "new@b.com"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.ElementsMatch(t, []string{events.SubscriberSubscribed, events.SubscriberResubscribed}, rec.keys)
	repo.AssertExpectations(t)
}

func TestBulkSubscribe_StopsOnStorageError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriberByEmail", mock.Anything, "a@b.com").Return(nil, repository.ErrNotFound).Once()
	repo.On("SaveSubscriber", mock.Anything, mock.Anything).Return(errors.New("db error")).Once()

	count, err := New(newNoopLogger(), repo, events.Noop{}).BulkSubscribe(context.Background(), []string{"a@b.com", "c@d.com"})
	require.Error(t, err)
	assert.Zero(t, count)
	repo.AssertNotCalled(t, "GetSubscriberByEmail", mock.Anything, "c@d.com")
}
