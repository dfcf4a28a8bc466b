package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Inxkls/xerces/internal/models"
)

func decodeInfo(t *testing.T, raw string) *AlbumInfo {
	t.Helper()
	var payload albumInfoJSON
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("failed to decode album: %v", err)
	}
	return payload.normalize()
}

func TestNormalizeTracks(t *testing.T) {
	tc := []struct {
		name string
		raw  string
		want []models.Track
	}{
		{
			name: "Bare Object",
			raw:  `{"name":"Solo","tracks":{"track":{"name":"Solo Track","@attr":{"rank":"1"}}}}`,
			want: []models.Track{{Name: "Solo Track", Rank: 1}},
		},
		{
			name: "Absent With Album Name",
			raw:  `{"name":"Epitaph"}`,
			want: []models.Track{{Name: "Epitaph", Rank: 1}},
		},
		{
			name: "Absent Without Album Name",
			raw:  `{"name":""}`,
			want: []models.Track{},
		},
		{
			name: "Scalar String Counts As Absent",
			raw:  `{"name":"Epitaph","tracks":{"track":""}}`,
			want: []models.Track{{Name: "Epitaph", Rank: 1}},
		},
		{
			name: "Scalar Number Counts As Absent",
			raw:  `{"name":"Epitaph","tracks":{"track":0}}`,
			want: []models.Track{{Name: "Epitaph", Rank: 1}},
		},
		{
			name: "Empty Array",
			raw:  `{"name":"Nothing","tracks":{"track":[]}}`,
			want: []models.Track{},
		},
		{
			name: "Array Keeps Order And Falls Back To Index",
			raw: `{"name":"A","tracks":{"track":[
				{"name":"First","duration":"180"},
				{"name":"Second","duration":0,"@attr":{"rank":"0"}},
				{"name":"Third","duration":null,"@attr":{"rank":7}}
			]}}`,
			want: []models.Track{
				{Name: "First", DurationSeconds: 180, Rank: 1},
				{Name: "Second", Rank: 2},
				{Name: "Third", Rank: 7},
			},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTracks(decodeInfo(t, tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTracks() = %+v, want %+v", got, tt.want)
			}
		})
	}

	t.Run("Nil Info", func(t *testing.T) {
		if got := NormalizeTracks(nil); got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", got)
		}
	})

	t.Run("Restartable", func(t *testing.T) {
		info := decodeInfo(t, `{"name":"A","tracks":{"track":[{"name":"x"},{"name":"y"}]}}`)
		first := NormalizeTracks(info)
		second := NormalizeTracks(info)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected identical results, got %v and %v", first, second)
		}
	})
}

func TestDecoders(t *testing.T) {
	t.Run("ArtistField", func(t *testing.T) {
		tc := []struct {
			raw  string
			want string
		}{
			{raw: `"Daft Punk"`, want: "Daft Punk"},
			{raw: `{"name":"Daft Punk","mbid":"x"}`, want: "Daft Punk"},
			{raw: `null`, want: ""},
		}
		for _, tt := range tc {
			var a ArtistField
			if err := json.Unmarshal([]byte(tt.raw), &a); err != nil {
				t.Fatalf("unmarshal %s failed: %v", tt.raw, err)
			}
			if a.String() != tt.want {
				t.Errorf("got %q, want %q", a, tt.want)
			}
		}

		var a ArtistField
		if err := json.Unmarshal([]byte(`42`), &a); err == nil {
			t.Error("expected error for numeric artist")
		}
	})

	t.Run("FlexInt", func(t *testing.T) {
		tc := []struct {
			raw  string
			want FlexInt
		}{
			{raw: `12`, want: 12},
			{raw: `"12"`, want: 12},
			{raw: `""`, want: 0},
			{raw: `null`, want: 0},
			{raw: `"abc"`, want: 0},
			{raw: `3.0`, want: 3},
		}
		for _, tt := range tc {
			var f FlexInt
			if err := json.Unmarshal([]byte(tt.raw), &f); err != nil {
				t.Fatalf("unmarshal %s failed: %v", tt.raw, err)
			}
			if f != tt.want {
				t.Errorf("%s: got %d, want %d", tt.raw, f, tt.want)
			}
		}
	})

	t.Run("PickImage", func(t *testing.T) {
		images := []Image{{URL: "s", Size: "small"}, {URL: "xl", Size: "extralarge"}}
		if got := PickImage(images, "extralarge"); got != "xl" {
			t.Errorf("expected xl, got %q", got)
		}
		if got := PickImage(images, "mega"); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}
