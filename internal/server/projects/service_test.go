package projects

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTasks struct {
	counts  map[primitive.ObjectID]int
	deleted []primitive.ObjectID
}

func (f *fakeTasks) CountByProject(_ context.Context, id primitive.ObjectID) (int, error) {
	return f.counts[id], nil
}

func (f *fakeTasks) DeleteByProject(_ context.Context, id primitive.ObjectID) (int, error) {
	f.deleted = append(f.deleted, id)
	n := f.counts[id]
	delete(f.counts, id)
	return n, nil
}

func TestProjectLifecycle(t *testing.T) {
	tasks := &fakeTasks{counts: map[primitive.ObjectID]int{}}
	s := NewService(NewMemoryRepository(), tasks)
	ctx := context.Background()
	user := primitive.NewObjectID()

	p, err := s.Create(ctx, user, " Website ", "redesign")
	require.NoError(t, err)
	assert.Equal(t, "Website", p.Name)

	tasks.counts[p.ID] = 3

	list, err := s.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].TaskCount)

	name := "Site"
	p, err = s.Update(ctx, user, p.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Site", p.Name)
	assert.Equal(t, "redesign", p.Description)
	assert.Equal(t, 1, p.Version)
	assert.Equal(t, 3, p.TaskCount)

	require.NoError(t, s.Delete(ctx, user, p.ID))
	assert.Equal(t, []primitive.ObjectID{p.ID}, tasks.deleted)

	_, err = s.Get(ctx, user, p.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestProjects_OwnerScoping(t *testing.T) {
	s := NewService(NewMemoryRepository(), &fakeTasks{counts: map[primitive.ObjectID]int{}})
	ctx := context.Background()
	owner, stranger := primitive.NewObjectID(), primitive.NewObjectID()

	p, err := s.Create(ctx, owner, "Mine", "")
	require.NoError(t, err)

	_, err = s.Get(ctx, stranger, p.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, s.Delete(ctx, stranger, p.ID), common.ErrorNotFound)

	list, err := s.List(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_RequiresName(t *testing.T) {
	s := NewService(NewMemoryRepository(), &fakeTasks{})
	_, err := s.Create(context.Background(), primitive.NewObjectID(), "  ", "")
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
}
