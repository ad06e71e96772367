package domain

import (
	"fmt"
	"slices"
	"time"
)

// Kind identifies which variant of the media union a record is.
// The set is closed; records with an unknown kind are rejected at the boundary.
type Kind string

const (
	// KindBook is a physical book with an author and page count.
	KindBook Kind = "book"
	// KindVideo is a video recording with a duration and quality label.
	KindVideo Kind = "video"
	// KindAudio is an audio recording with a publisher and duration.
	KindAudio Kind = "audio"
	// KindEbook is an electronic book with file size and format on top of the book fields.
	KindEbook Kind = "ebook"
	// KindAudiobook is a narrated book carrying both book and audio fields.
	KindAudiobook Kind = "audiobook"
)

// Kinds returns every valid media kind in display order.
func Kinds() []Kind {
	return []Kind{KindBook, KindVideo, KindAudio, KindEbook, KindAudiobook}
}

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds(), k)
}

// BookDetails carries the fields specific to the book variant.
type BookDetails struct {
	Author    string `json:"author"`
	PageCount int    `json:"page_count"`
}

// VideoDetails carries the fields specific to the video variant.
// Quality is free text ("4K", "1080p", ...).
type VideoDetails struct {
	DurationMinutes int    `json:"duration_minutes"`
	Quality         string `json:"quality"`
}

// AudioDetails carries the fields specific to the audio variant.
type AudioDetails struct {
	Publisher       string `json:"publisher"`
	DurationMinutes int    `json:"duration_minutes"`
}

// EbookDetails carries the fields specific to the ebook variant.
type EbookDetails struct {
	Author    string  `json:"author"`
	PageCount int     `json:"page_count"`
	SizeMB    float64 `json:"size_mb"`
	Format    string  `json:"format"`
}

// AudiobookDetails carries the fields specific to the audiobook variant.
// PageCount refers to the print edition and may be zero; it exists for
// uniformity with the book variants.
type AudiobookDetails struct {
	Author          string `json:"author"`
	PageCount       int    `json:"page_count"`
	Publisher       string `json:"publisher"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Media is a catalog record. Exactly one of the variant payloads is set,
// and it must be the one matching Kind. Kind never changes after creation.
type Media struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Available bool      `json:"available"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Book      *BookDetails      `json:"book,omitempty"`
	Video     *VideoDetails     `json:"video,omitempty"`
	Audio     *AudioDetails     `json:"audio,omitempty"`
	Ebook     *EbookDetails     `json:"ebook,omitempty"`
	Audiobook *AudiobookDetails `json:"audiobook,omitempty"`
}

// NewBook constructs a book record. New records start out available.
func NewBook(title, author string, pageCount int) *Media {
	return &Media{
		Title:     title,
		Available: true,
		Kind:      KindBook,
		Book:      &BookDetails{Author: author, PageCount: pageCount},
	}
}

// NewVideo constructs a video record.
func NewVideo(title string, durationMinutes int, quality string) *Media {
	return &Media{
		Title:     title,
		Available: true,
		Kind:      KindVideo,
		Video:     &VideoDetails{DurationMinutes: durationMinutes, Quality: quality},
	}
}

// NewAudio constructs an audio record.
func NewAudio(title, publisher string, durationMinutes int) *Media {
	return &Media{
		Title:     title,
		Available: true,
		Kind:      KindAudio,
		Audio:     &AudioDetails{Publisher: publisher, DurationMinutes: durationMinutes},
	}
}

// NewEbook constructs an ebook record.
func NewEbook(title, author string, pageCount int, sizeMB float64, format string) *Media {
	return &Media{
		Title:     title,
		Available: true,
		Kind:      KindEbook,
		Ebook:     &EbookDetails{Author: author, PageCount: pageCount, SizeMB: sizeMB, Format: format},
	}
}

// NewAudiobook constructs an audiobook record.
func NewAudiobook(title, author string, pageCount int, publisher string, durationMinutes int) *Media {
	return &Media{
		Title:     title,
		Available: true,
		Kind:      KindAudiobook,
		Audiobook: &AudiobookDetails{Author: author, PageCount: pageCount, Publisher: publisher, DurationMinutes: durationMinutes},
	}
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new record.
func (m *Media) InitTimestamps() {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp to the current time.
func (m *Media) Touch() {
	m.UpdatedAt = time.Now()
}

// Validate checks the union invariants: a non-empty title, a known kind,
// exactly the matching variant payload, and non-negative numeric fields.
func (m *Media) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("media title must not be empty")
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("unknown media kind %q", m.Kind)
	}

	set := 0
	for _, present := range []bool{m.Book != nil, m.Video != nil, m.Audio != nil, m.Ebook != nil, m.Audiobook != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("media must carry exactly one variant payload, got %d", set)
	}

	switch m.Kind {
	case KindBook:
		if m.Book == nil {
			return fmt.Errorf("book record is missing its book payload")
		}
		if m.Book.PageCount < 0 {
			return fmt.Errorf("page count must not be negative")
		}
	case KindVideo:
		if m.Video == nil {
			return fmt.Errorf("video record is missing its video payload")
		}
		if m.Video.DurationMinutes < 0 {
			return fmt.Errorf("duration must not be negative")
		}
	case KindAudio:
		if m.Audio == nil {
			return fmt.Errorf("audio record is missing its audio payload")
		}
		if m.Audio.DurationMinutes < 0 {
			return fmt.Errorf("duration must not be negative")
		}
	case KindEbook:
		if m.Ebook == nil {
			return fmt.Errorf("ebook record is missing its ebook payload")
		}
		if m.Ebook.PageCount < 0 {
			return fmt.Errorf("page count must not be negative")
		}
		if m.Ebook.SizeMB < 0 {
			return fmt.Errorf("file size must not be negative")
		}
	case KindAudiobook:
		if m.Audiobook == nil {
			return fmt.Errorf("audiobook record is missing its audiobook payload")
		}
		if m.Audiobook.DurationMinutes < 0 {
			return fmt.Errorf("duration must not be negative")
		}
		if m.Audiobook.PageCount < 0 {
			return fmt.Errorf("page count must not be negative")
		}
	}

	return nil
}

// Author returns the record's author and whether the variant has one.
// Video and audio records have no author.
func (m *Media) Author() (string, bool) {
	switch {
	case m.Book != nil:
		return m.Book.Author, true
	case m.Ebook != nil:
		return m.Ebook.Author, true
	case m.Audiobook != nil:
		return m.Audiobook.Author, true
	}
	return "", false
}

// DurationMinutes returns the playback duration for variants that have one,
// zero otherwise.
func (m *Media) DurationMinutes() int {
	switch {
	case m.Video != nil:
		return m.Video.DurationMinutes
	case m.Audio != nil:
		return m.Audio.DurationMinutes
	case m.Audiobook != nil:
		return m.Audiobook.DurationMinutes
	}
	return 0
}

// PageCount returns the page count for variants that have one, zero otherwise.
func (m *Media) PageCount() int {
	switch {
	case m.Book != nil:
		return m.Book.PageCount
	case m.Ebook != nil:
		return m.Ebook.PageCount
	case m.Audiobook != nil:
		return m.Audiobook.PageCount
	}
	return 0
}
