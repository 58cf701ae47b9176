package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/travelmada/internal/model"
)

func postIDs(posts []model.BlogPost) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestFilterPosts(t *testing.T) {
	posts := samplePosts()

	tests := []struct {
		name   string
		filter PostFilter
		want   []string
	}{
		{name: "no filter", filter: PostFilter{}, want: []string{"1", "2", "3"}},
		{name: "all category", filter: PostFilter{Category: "All"}, want: []string{"1", "2", "3"}},
		{name: "wildlife", filter: PostFilter{Category: "Wildlife"}, want: []string{"1", "3"}},
		{name: "search title any case", filter: PostFilter{Search: "nOsY"}, want: []string{"2", "3"}},
		{name: "search matches excerpt", filter: PostFilter{Search: "morondava"}, want: []string{"1"}},
		{name: "category and search", filter: PostFilter{Category: "Beaches", Search: "nosy"}, want: []string{"2"}},
		{name: "no match", filter: PostFilter{Category: "Food", Search: "nosy"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postIDs(FilterPosts(posts, tt.filter)))
		})
	}
}

func TestPostFilterActive(t *testing.T) {
	assert.False(t, PostFilter{}.Active())
	assert.False(t, PostFilter{Category: "All"}.Active())
	assert.True(t, PostFilter{Category: "Food"}.Active())
	assert.True(t, PostFilter{Search: "x"}.Active())
}

func TestPublishedOnly(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, postIDs(PublishedOnly(samplePosts())))
}

func TestCategoryOptions(t *testing.T) {
	assert.Equal(t, []string{"All", "Beaches", "Wildlife", "Culture", "Adventure", "Food"}, CategoryOptions())
}
