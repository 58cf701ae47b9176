package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmada/internal/model"
)

func TestPostServiceListHidesDraftsFromPublic(t *testing.T) {
	svc := NewPostService(newSampleStore(), nil)

	assert.Equal(t, []string{"1", "2"}, postIDs(svc.List(PostFilter{}, false)))
	assert.Equal(t, []string{"1", "2", "3"}, postIDs(svc.List(PostFilter{}, true)))
	assert.Equal(t, []string{"1"}, postIDs(svc.List(PostFilter{Category: "Wildlife"}, false)))
	assert.Equal(t, []string{"1"}, postIDs(svc.Latest(1)))
}

func TestPostServiceGetPublishedBySlug(t *testing.T) {
	svc := NewPostService(newSampleStore(), nil)

	post, err := svc.GetPublishedBySlug("nosy-be-guide")
	require.NoError(t, err)
	assert.Equal(t, "2", post.ID)

	_, err = svc.GetPublishedBySlug("lemurs-andasibe")
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.GetPublishedBySlug("missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostServiceSaveUpserts(t *testing.T) {
	contentStore := newSampleStore()
	svc := NewPostService(contentStore, nil)

	created, err := svc.Save(model.BlogPost{ID: "4", Title: "Isalo", Slug: "isalo", Category: model.CategoryAdventure, Status: model.StatusDraft})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "4", svc.ListAll()[0].ID)

	post, err := svc.Get("2")
	require.NoError(t, err)
	post.Title = "Nosy Be Revisited"
	created, err = svc.Save(post)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 4, contentStore.Len())

	got, ok := contentStore.FindPostBySlug("nosy-be-guide")
	require.True(t, ok)
	assert.Equal(t, "Nosy Be Revisited", got.Title)
}

func TestPostServiceSaveRejectsInvalidEnums(t *testing.T) {
	contentStore := newSampleStore()
	svc := NewPostService(contentStore, nil)

	_, err := svc.Save(model.BlogPost{ID: "9", Category: "Nature", Status: "archived", Tags: []string{""}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPost)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.HasField("Category"))
	assert.True(t, verr.HasField("Status"))
	assert.True(t, verr.HasField("Tags[0]"))
	assert.Equal(t, 3, contentStore.Len())

	_, err = svc.Save(model.BlogPost{Category: model.CategoryFood, Status: model.StatusDraft})
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasField("ID"))
}

func TestPostServiceDeleteAndSlugConflicts(t *testing.T) {
	svc := NewPostService(newSampleStore(), nil)

	conflicts := svc.SlugConflicts(model.BlogPost{ID: "new", Slug: "nosy-be-guide"})
	assert.Equal(t, []string{"2"}, postIDs(conflicts))
	assert.Empty(t, svc.SlugConflicts(model.BlogPost{ID: "2", Slug: "nosy-be-guide"}))
	assert.Empty(t, svc.SlugConflicts(model.BlogPost{ID: "new"}))

	svc.Delete("2")
	_, err := svc.Get("2")
	assert.ErrorIs(t, err, ErrPostNotFound)
	svc.Delete("2")
	assert.Len(t, svc.ListAll(), 2)
}

func TestNewPostServicePanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() { NewPostService(nil, nil) })
}
