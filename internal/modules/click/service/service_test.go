package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"scopri.app/eventilocali/internal/entity"
	clickRepo "scopri.app/eventilocali/internal/modules/click/repository"
	eventRepo "scopri.app/eventilocali/internal/modules/event/repository"
	"scopri.app/eventilocali/pkg/apperror"
)

type fakeEventRepo struct {
	eventRepo.EventRepository

	events map[uuid.UUID]*entity.Event
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *e
	return &copied, nil
}

type pair struct {
	event uuid.UUID
	user  uuid.UUID
}

// fakeClickRepo mimics the unique-index semantics: a repeat pair never inserts
// and never moves the counter.
type fakeClickRepo struct {
	clickRepo.ClickRepository

	seen   map[pair]bool
	events map[uuid.UUID]*entity.Event
}

func (r *fakeClickRepo) Record(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	p := pair{event: eventID, user: userID}
	if r.seen[p] {
		return false, nil
	}
	r.seen[p] = true
	r.events[eventID].ClickCount++
	return true, nil
}

func newClickFixture(event *entity.Event) (*fakeClickRepo, *fakeEventRepo) {
	events := map[uuid.UUID]*entity.Event{event.ID: event}
	return &fakeClickRepo{seen: make(map[pair]bool), events: events}, &fakeEventRepo{events: events}
}

func TestClickService_FirstClickCounts(t *testing.T) {
	event := &entity.Event{ID: uuid.New(), Status: entity.StatusApproved}
	clicks, events := newClickFixture(event)
	svc := NewClickService(clicks, events)

	res, err := svc.RecordClick(context.Background(), event.ID, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, 1, res.ClickCount)
	assert.False(t, res.AlreadyClicked)
}

func TestClickService_RepeatClickIsDeduplicated(t *testing.T) {
	event := &entity.Event{ID: uuid.New(), Status: entity.StatusApproved}
	clicks, events := newClickFixture(event)
	svc := NewClickService(clicks, events)
	userID := uuid.New()

	_, err := svc.RecordClick(context.Background(), event.ID, userID)
	require.NoError(t, err)

	res, err := svc.RecordClick(context.Background(), event.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ClickCount)
	assert.True(t, res.AlreadyClicked)
}

func TestClickService_DistinctUsersEachCount(t *testing.T) {
	event := &entity.Event{ID: uuid.New(), Status: entity.StatusApproved}
	clicks, events := newClickFixture(event)
	svc := NewClickService(clicks, events)

	_, err := svc.RecordClick(context.Background(), event.ID, uuid.New())
	require.NoError(t, err)

	res, err := svc.RecordClick(context.Background(), event.ID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 2, res.ClickCount)
	assert.False(t, res.AlreadyClicked)
}

func TestClickService_UnknownEventIsNotFound(t *testing.T) {
	event := &entity.Event{ID: uuid.New(), Status: entity.StatusApproved}
	clicks, events := newClickFixture(event)
	svc := NewClickService(clicks, events)

	_, err := svc.RecordClick(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, clicks.seen)
}
