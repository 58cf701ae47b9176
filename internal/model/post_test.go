package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSlugKeepsPunctuation(t *testing.T) {
	assert.Equal(t, "nosy-be:-the-perfumed-island", DeriveSlug("Nosy Be: The Perfumed Island"))
	assert.Equal(t, "", DeriveSlug(""))
	assert.Equal(t, "two--spaces", DeriveSlug("Two  Spaces"))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "Wildlife", want: CategoryWildlife},
		{input: "  beaches ", want: CategoryBeaches},
		{input: "FOOD", want: CategoryFood},
		{input: "Nature", wantErr: true},
		{input: "", wantErr: true},
		{input: "All", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeCategoryMapsAliases(t *testing.T) {
	assert.Equal(t, CategoryWildlife, NormalizeCategory("Nature", CategoryAdventure))
	assert.Equal(t, CategoryCulture, NormalizeCategory("culture", CategoryAdventure))
	assert.Equal(t, CategoryAdventure, NormalizeCategory("Nightlife", CategoryAdventure))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" Published ")
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, s)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestBlogPostCloneIsIndependent(t *testing.T) {
	original := BlogPost{
		ID:    "1",
		Tags:  []string{"Beach"},
		Cover: EmbeddedImage("image/png", []byte{1, 2, 3}),
	}
	clone := original.Clone()
	clone.Tags[0] = "Changed"
	clone.Cover.Data[0] = 9

	assert.Equal(t, "Beach", original.Tags[0])
	assert.Equal(t, byte(1), original.Cover.Data[0])
}
