package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(NewMemoryRepo())
	svc.Now = func() time.Time {
		now := clock
		clock = clock.Add(time.Minute)
		return now
	}
	return svc
}

func score(v float64) *float64 { return &v }

func TestServiceCreateDefaultsName(t *testing.T) {
	svc := newTestService()
	got, err := svc.Create(context.Background(), "alice", Input{Name: "   ", Content: json.RawMessage(` {"skills":[]} `)})
	require.NoError(t, err)
	assert.Equal(t, DefaultName, got.Name)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, `{"skills":[]}`, string(got.Content))
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService()
	cases := map[string]Input{
		"missing content":  {Name: "x"},
		"array content":    {Content: json.RawMessage(`[1,2]`)},
		"null content":     {Content: json.RawMessage(`null`)},
		"malformed object": {Content: json.RawMessage(`{"a":`)},
		"score too high":   {Content: json.RawMessage(`{}`), ATSScore: score(100.5)},
		"negative score":   {Content: json.RawMessage(`{}`), ATSScore: score(-1)},
		"name too long":    {Name: strings.Repeat("n", 201), Content: json.RawMessage(`{}`)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "alice", in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestServiceScoreBoundsAccepted(t *testing.T) {
	svc := newTestService()
	for _, v := range []float64{0, 100} {
		got, err := svc.Create(context.Background(), "alice", Input{Content: json.RawMessage(`{}`), ATSScore: score(v)})
		require.NoError(t, err)
		assert.Equal(t, v, *got.ATSScore)
	}
}

func TestServiceUpdateAdvancesUpdatedAt(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "alice", Input{Name: "Backend", Content: json.RawMessage(`{}`)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "alice", created.ID, Input{Name: "Backend v2", Content: json.RawMessage(`{"summary":"s"}`), ATSScore: score(80)})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "Backend v2", updated.Name)
}

func TestServiceUpdateForeignOwnerNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "alice", Input{Content: json.RawMessage(`{}`)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "bob", created.ID, Input{Content: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDeleteThenGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, "alice", Input{Content: json.RawMessage(`{}`)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", created.ID))
	_, err = svc.Get(ctx, "alice", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "alice", created.ID), ErrNotFound)
}

func TestServiceRequiresUser(t *testing.T) {
	svc := newTestService()
	_, err := svc.List(context.Background(), "")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
