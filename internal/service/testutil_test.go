package service

import (
	"github.com/travelmada/internal/model"
	"github.com/travelmada/internal/store"
)

func samplePosts() []model.BlogPost {
	return []model.BlogPost{
		{
			ID:       "1",
			Title:    "The Avenue of the Baobabs",
			Slug:     "avenue-of-baobabs",
			Excerpt:  "Giant trees at sunset near Morondava.",
			Category: model.CategoryWildlife,
			Tags:     []string{"Baobabs"},
			Status:   model.StatusPublished,
		},
		{
			ID:       "2",
			Title:    "Nosy Be: The Perfumed Island",
			Slug:     "nosy-be-guide",
			Excerpt:  "Ylang-ylang and turquoise water.",
			Category: model.CategoryBeaches,
			Tags:     []string{"Islands"},
			Status:   model.StatusPublished,
		},
		{
			ID:       "3",
			Title:    "Lemurs of Andasibe",
			Slug:     "lemurs-andasibe",
			Excerpt:  "Hear the Indri call. A day trip from NOSY harbour it is not.",
			Category: model.CategoryWildlife,
			Status:   model.StatusDraft,
		},
	}
}

func newSampleStore() *store.ContentStore {
	return store.NewContentStore(samplePosts(), model.DefaultSettings())
}
