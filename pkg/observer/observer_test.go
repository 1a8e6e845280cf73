package observer

import (
	"testing"

	"github.com/dtnitsch/readmoo-summary/models"
)

const pageURL = "https://reader.readmoo.com/e/abc123/OEBPS/Text/p-0007.xhtml"

func TestQualifies(t *testing.T) {
	tests := []struct {
		name string
		obs  models.Observation
		want bool
	}{
		{"reader page", models.Observation{URL: pageURL, StatusCode: 200, DocumentID: "d1"}, true},
		{"http scheme", models.Observation{URL: "http://reader.readmoo.com/e/x/p-1.xhtml", StatusCode: 200, DocumentID: "d1"}, true},
		{"not found", models.Observation{URL: pageURL, StatusCode: 404, DocumentID: "d1"}, false},
		{"no document", models.Observation{URL: pageURL, StatusCode: 200}, false},
		{"other host", models.Observation{URL: "https://readmoo.com/e/x/p-1.xhtml", StatusCode: 200, DocumentID: "d1"}, false},
		{"outside /e/", models.Observation{URL: "https://reader.readmoo.com/book/p-1.xhtml", StatusCode: 200, DocumentID: "d1"}, false},
		{"stylesheet", models.Observation{URL: "https://reader.readmoo.com/e/x/style.css", StatusCode: 200, DocumentID: "d1"}, false},
		{"non-numeric page", models.Observation{URL: "https://reader.readmoo.com/e/x/p-intro.xhtml", StatusCode: 200, DocumentID: "d1"}, false},
		{"ftp scheme", models.Observation{URL: "ftp://reader.readmoo.com/e/x/p-1.xhtml", StatusCode: 200, DocumentID: "d1"}, false},
		{"garbage", models.Observation{URL: "::::", StatusCode: 200, DocumentID: "d1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Qualifies(tt.obs); got != tt.want {
				t.Errorf("Qualifies(%+v) = %v, want %v", tt.obs, got, tt.want)
			}
		})
	}
}

type recorder struct {
	urls []string
}

func (r *recorder) RecordObservedRequest(u string) {
	r.urls = append(r.urls, u)
}

func TestFeed_Observe(t *testing.T) {
	rec := &recorder{}
	feed := NewFeed(rec, nil)

	if feed.Observe(models.Observation{URL: pageURL, StatusCode: 500, DocumentID: "d1"}) {
		t.Error("Observe() of failed fetch should report false")
	}
	if !feed.Observe(models.Observation{URL: pageURL, StatusCode: 200, DocumentID: "d1"}) {
		t.Error("Observe() of reader page should report true")
	}
	if len(rec.urls) != 1 || rec.urls[0] != pageURL {
		t.Errorf("recorded = %v, want [%s]", rec.urls, pageURL)
	}
}
