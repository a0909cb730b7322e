package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"formforge-backend/domain/forms"
)

func TestSubmissionSaveAndList(t *testing.T) {
	store := newTestStore(t)
	repo := NewSubmissionRepository(store, zap.NewNop())
	ctx := context.Background()

	first := forms.NewSubmission("form-1", map[string]interface{}{
		"field-a": "Ada",
		"field-b": true,
		"field-c": 42.0,
	})
	second := forms.NewSubmission("form-1", map[string]interface{}{"field-a": "Grace"})
	other := forms.NewSubmission("form-2", map[string]interface{}{"field-a": "ignored"})

	require.NoError(t, repo.SaveSubmission(ctx, first))
	require.NoError(t, repo.SaveSubmission(ctx, second))
	require.NoError(t, repo.SaveSubmission(ctx, other))

	subs, err := repo.ListSubmissionsByForm(ctx, "form-1")
	require.NoError(t, err)
	require.Len(t, subs, 2)

	assert.Equal(t, first.ID, subs[0].ID)
	assert.Equal(t, "Ada", subs[0].Data["field-a"])
	assert.Equal(t, true, subs[0].Data["field-b"])
	assert.Equal(t, 42.0, subs[0].Data["field-c"])
	assert.Equal(t, second.ID, subs[1].ID)
}

func TestListSubmissionsEmpty(t *testing.T) {
	store := newTestStore(t)
	repo := NewSubmissionRepository(store, zap.NewNop())

	subs, err := repo.ListSubmissionsByForm(context.Background(), "no-such-form")
	require.NoError(t, err)
	assert.Empty(t, subs)
}
