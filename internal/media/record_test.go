package media

import "testing"

func TestCategorizeHeight(t *testing.T) {
	tests := []struct {
		height int
		want   ResolutionCategory
	}{
		{4320, Category8KPlus},
		{2160, Category4K},
		{1440, CategoryFullHD},
		{1080, CategoryFullHD},
		{720, CategoryHD},
		{576, CategorySD},
		{480, CategorySD},
		{1, CategorySD},
		{0, CategoryUnknown},
		{-10, CategoryUnknown},
	}

	for _, tt := range tests {
		if got := CategorizeHeight(tt.height); got != tt.want {
			t.Errorf("CategorizeHeight(%d) = %v, want %v", tt.height, got, tt.want)
		}
	}
}

func TestResolutionCategoryString(t *testing.T) {
	tests := []struct {
		category ResolutionCategory
		want     string
	}{
		{CategorySD, "SD"},
		{CategoryHD, "HD"},
		{CategoryFullHD, "FullHD"},
		{Category4K, "4K"},
		{Category8KPlus, "8K+"},
		{CategoryUnknown, "Unknown"},
		{ResolutionCategory(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEpisodeLabel(t *testing.T) {
	r := &Record{Season: 1, Episode: 2}
	if got := r.EpisodeLabel(); got != "S01E02" {
		t.Errorf("EpisodeLabel = %q, want S01E02", got)
	}

	r = &Record{Season: 10, Episode: 22}
	if got := r.EpisodeLabel(); got != "S10E22" {
		t.Errorf("EpisodeLabel = %q, want S10E22", got)
	}
}
