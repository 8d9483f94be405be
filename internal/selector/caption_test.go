package selector_test

import (
	"strings"
	"testing"

	"bibmend/internal/bibtex"
	"bibmend/internal/selector"
)

func captionRecord(entryType string, pairs ...string) bibtex.Record {
	record := bibtex.NewRecord(entryType, "key1")
	for i := 0; i+1 < len(pairs); i += 2 {
		record.Set(pairs[i], pairs[i+1])
	}
	return record
}

func TestCaptionProceedingsNormalizesVenue(t *testing.T) {
	record := captionRecord("inproceedings", "booktitle", "Computer Vision -- ECCV   2016")

	if got, want := selector.Caption(record), "Proceedings (Computer Vision ECCV 2016)"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}
}

func TestCaptionTruncatesLongVenue(t *testing.T) {
	record := captionRecord("inproceedings", "booktitle", strings.Repeat("x", 60))

	want := "Proceedings (" + strings.Repeat("x", 52) + "...)"
	if got := selector.Caption(record); got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}
}

func TestCaptionArticleVenueFallsBack(t *testing.T) {
	full := captionRecord("article",
		"journal", "Nature Machine Intelligence",
		"publisher", "Springer",
		"doi", "10.1000/182",
	)
	if got, want := selector.Caption(full), "Journal article (Nature Machine Intelligence)"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}

	byPublisher := captionRecord("article", "publisher", "Springer")
	if got, want := selector.Caption(byPublisher), "Journal article (Springer)"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}

	byDOI := captionRecord("article", "doi", "10.1000/182")
	if got, want := selector.Caption(byDOI), "Journal article (10.1000/182)"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}
}

func TestCaptionDropsEmptyVenueParens(t *testing.T) {
	article := captionRecord("article", "title", "Untitled")
	if got, want := selector.Caption(article), "Journal article"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}

	misc := captionRecord("misc")
	if got, want := selector.Caption(misc), "Misc"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}
}

func TestCaptionFixedTypes(t *testing.T) {
	cases := map[string]string{
		"book":          "Book",
		"phdthesis":     "PhD thesis",
		"mastersthesis": "Master's thesis",
		"techreport":    "Techreport",
	}
	for entryType, want := range cases {
		if got := selector.Caption(captionRecord(entryType)); got != want {
			t.Errorf("caption for %q = %q, want %q", entryType, got, want)
		}
	}
}

func TestCaptionMiscUsesHowpublished(t *testing.T) {
	record := captionRecord("misc", "howpublished", "GitHub repository")

	if got, want := selector.Caption(record), "Misc (GitHub repository)"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}
}

func TestCaptionUnknownTypeIsCapitalized(t *testing.T) {
	if got, want := selector.Caption(captionRecord("online")), "Online"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}
	if got, want := selector.Caption(captionRecord("")), "Other"; got != want {
		t.Fatalf("caption = %q, want %q", got, want)
	}
}
