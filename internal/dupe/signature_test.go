package dupe

import (
	"strings"
	"testing"

	"github.com/Nomadcxx/vidsweep/internal/media"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Movie.Name.2020.1080p.BluRay.x264.mkv", "movie name"},
		{"Movie.Name.2020.720p.mkv", "movie name"},
		{"movie_name_2020_1080p.mp4", "movie name"},
		{"Show.Name.S01E02.720p.WEB-DL.mkv", "show name s01e02"},
		{"Some Movie (2019) [REMUX].mkv", "some movie"},
		{"Some.Movie.2160p.UHD.HDR.Atmos.TrueHD.mkv", "some movie"},
		{"plain name", "plain name"},
		{"Mr. Robot", "mr robot"},
		{"1080p.mkv", ""},
		{"", ""},
		// Only a trailing short extension is trimmed; interior dots
		// become word separators.
		{"a.very.dotted.name.webm", "a very dotted name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSignatureMovieResolutionVariants(t *testing.T) {
	a := &media.Record{
		Path:        "/library/Movie.Name.2020.1080p.mkv",
		Filename:    "Movie.Name.2020.1080p.mkv",
		ContentType: media.ContentMovie,
		DurationSec: 7200,
	}
	b := &media.Record{
		Path:        "/library/Movie.Name.2020.720p.mkv",
		Filename:    "Movie.Name.2020.720p.mkv",
		ContentType: media.ContentMovie,
		DurationSec: 7200,
	}

	sigA, sigB := Signature(a), Signature(b)
	if sigA != sigB {
		t.Fatalf("expected equal signatures, got %q vs %q", sigA, sigB)
	}
	if !strings.HasPrefix(sigA, "movie:") {
		t.Errorf("movie signature %q missing movie: prefix", sigA)
	}
	if !strings.HasSuffix(sigA, "|7200") {
		t.Errorf("signature %q missing duration component", sigA)
	}
}

func TestSignatureMovieDurationSeparates(t *testing.T) {
	a := &media.Record{Filename: "Movie.Name.mkv", ContentType: media.ContentMovie, DurationSec: 7200}
	b := &media.Record{Filename: "Movie.Name.mkv", ContentType: media.ContentMovie, DurationSec: 5400}

	if Signature(a) == Signature(b) {
		t.Error("different durations must not share a signature")
	}
}

func TestSignatureTVEpisode(t *testing.T) {
	a := &media.Record{
		Filename:    "Show.Name.S01E02.720p.mkv",
		ContentType: media.ContentTVEpisode,
		Title:       "Show Name",
		Season:      1,
		Episode:     2,
		DurationSec: 1800,
	}
	b := &media.Record{
		Filename:    "show_name_s01e02.mkv",
		ContentType: media.ContentTVEpisode,
		Title:       "show name",
		Season:      1,
		Episode:     2,
		DurationSec: 1790,
	}

	sigA, sigB := Signature(a), Signature(b)
	if sigA != sigB {
		t.Fatalf("title-equivalent episodes diverged: %q vs %q", sigA, sigB)
	}
	if !strings.HasPrefix(sigA, "tv:") {
		t.Errorf("tv signature %q missing tv: prefix", sigA)
	}
	if !strings.HasSuffix(sigA, "|s01e02") {
		t.Errorf("tv signature %q missing episode marker", sigA)
	}
}

func TestSignatureTVDifferentEpisodes(t *testing.T) {
	a := &media.Record{ContentType: media.ContentTVEpisode, Title: "Show Name", Season: 1, Episode: 1}
	b := &media.Record{ContentType: media.ContentTVEpisode, Title: "Show Name", Season: 1, Episode: 2}

	if Signature(a) == Signature(b) {
		t.Error("different episodes must not share a signature")
	}
}

func TestSignatureDeterministic(t *testing.T) {
	r := &media.Record{
		Filename:    "Movie.Name.2020.1080p.mkv",
		ContentType: media.ContentMovie,
		DurationSec: 7199.6,
	}

	first := Signature(r)
	for i := 0; i < 10; i++ {
		if got := Signature(r); got != first {
			t.Fatalf("signature not stable: %q then %q", first, got)
		}
	}
	// 7199.6 rounds to 7200.
	if !strings.HasSuffix(first, "|7200") {
		t.Errorf("duration not rounded: %q", first)
	}
}

func TestSignatureZeroDuration(t *testing.T) {
	r := &media.Record{Filename: "broken.mkv", ContentType: media.ContentMovie}
	if got := Signature(r); !strings.HasSuffix(got, "|0") {
		t.Errorf("zero duration signature = %q, want |0 suffix", got)
	}
}

func TestHash8(t *testing.T) {
	h := hash8("movie name")
	if len(h) != 8 {
		t.Fatalf("hash8 length = %d, want 8", len(h))
	}
	if h != hash8("movie name") {
		t.Error("hash8 not deterministic")
	}
	if h == hash8("other name") {
		t.Error("distinct inputs produced the same hash8")
	}
}
