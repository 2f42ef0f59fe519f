package entity

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid https URL", url: "https://example.com/news/1", wantErr: false},
		{name: "valid http URL", url: "http://example.com/news/1", wantErr: false},
		{name: "single label host", url: "http://a", wantErr: false},
		{name: "valid URL with query", url: "https://example.com/a?b=c", wantErr: false},
		{name: "empty URL", url: "", wantErr: true},
		{name: "whitespace only", url: "   ", wantErr: true},
		{name: "invalid scheme - ftp", url: "ftp://example.com/feed", wantErr: true},
		{name: "invalid scheme - javascript", url: "javascript:alert(1)", wantErr: true},
		{name: "no host", url: "https://", wantErr: true},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", maxURLLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateURL(%q) err=%v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if ve.Field != "url" {
					t.Errorf("Field = %q, want url", ve.Field)
				}
			}
		})
	}
}

func validArticle() *Article {
	return &Article{
		Title:       "T",
		URL:         "http://a",
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Source:      Source{Name: "S"},
	}
}

func TestArticle_ValidateForSave(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(a *Article)
		wantField string
	}{
		{name: "valid", mutate: func(*Article) {}},
		{name: "missing title", mutate: func(a *Article) { a.Title = "" }, wantField: "title"},
		{name: "blank title", mutate: func(a *Article) { a.Title = "  " }, wantField: "title"},
		{name: "missing url", mutate: func(a *Article) { a.URL = "" }, wantField: "url"},
		{name: "missing publishedAt", mutate: func(a *Article) { a.PublishedAt = time.Time{} }, wantField: "publishedAt"},
		{name: "missing source name", mutate: func(a *Article) { a.Source.Name = "" }, wantField: "source.name"},
		// 最初に失敗したフィールドのみ報告
		{name: "title reported first", mutate: func(a *Article) { a.Title = ""; a.URL = "" }, wantField: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArticle()
			tt.mutate(a)
			err := a.ValidateForSave()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Error("expected errors.Is(err, ErrValidationFailed)")
			}
		})
	}
}

func TestArticle_ValidateForSave_Nil(t *testing.T) {
	var a *Article
	if err := a.ValidateForSave(); err == nil {
		t.Fatal("expected error for nil article")
	}
}
