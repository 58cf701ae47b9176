package store

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmada/internal/model"
)

func TestSeedPostsNormalizesCategories(t *testing.T) {
	posts, err := SeedPosts()
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, "avenue-of-baobabs", posts[0].Slug)
	assert.Equal(t, model.CategoryWildlife, posts[0].Category)
	assert.Equal(t, []string{"Baobab", "Sunset", "Photography"}, posts[0].Tags)
	assert.True(t, posts[0].Cover.IsRemote())
	assert.Contains(t, posts[0].Content, "Grandidier's baobabs")

	assert.Equal(t, "nosy-be-guide", posts[1].Slug)
	assert.Equal(t, model.CategoryBeaches, posts[1].Category)

	for _, p := range posts {
		assert.True(t, p.Category.Valid(), p.ID)
		assert.Equal(t, model.StatusPublished, p.Status, p.ID)
	}
}

func TestSeedDestinations(t *testing.T) {
	destinations, err := SeedDestinations()
	require.NoError(t, err)
	require.Len(t, destinations, 4)
	assert.Equal(t, "Nosy Be", destinations[0].Name)
	assert.Equal(t, "East", destinations[3].Region)
}

func TestLoadPostsDefaultsAndErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"posts/a.md":       &fstest.MapFile{Data: []byte("---\nid: x\ntitle: Hello World\ncategory: unknown\nstatus: bogus\n---\nBody\n")},
		"posts/readme.txt": &fstest.MapFile{Data: []byte("ignored")},
	}
	posts, err := loadPosts(fsys, "posts")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello-world", posts[0].Slug)
	assert.Equal(t, model.CategoryAdventure, posts[0].Category)
	assert.Equal(t, model.StatusDraft, posts[0].Status)
	assert.Equal(t, "Body", posts[0].Content)

	broken := fstest.MapFS{
		"posts/b.md": &fstest.MapFile{Data: []byte("---\ntitle: No id\n---\n")},
	}
	_, err = loadPosts(broken, "posts")
	assert.Error(t, err)
}
