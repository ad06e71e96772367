package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook_CarriesOnlyBookFields(t *testing.T) {
	m := NewBook("Dune", "Herbert", 412)

	require.NoError(t, m.Validate())
	assert.Equal(t, KindBook, m.Kind)
	assert.True(t, m.Available)
	assert.Equal(t, "Herbert", m.Book.Author)
	assert.Equal(t, 412, m.Book.PageCount)

	// No foreign variant payloads leak into the record.
	assert.Nil(t, m.Video)
	assert.Nil(t, m.Audio)
	assert.Nil(t, m.Ebook)
	assert.Nil(t, m.Audiobook)
	assert.Equal(t, 0, m.DurationMinutes())
}

func TestMediaValidate(t *testing.T) {
	tests := []struct {
		name    string
		media   *Media
		wantErr bool
	}{
		{
			name:  "valid video",
			media: NewVideo("Inception", 148, "4K"),
		},
		{
			name:  "valid ebook",
			media: NewEbook("Clean Code", "Robert C. Martin", 464, 12.5, "PDF"),
		},
		{
			name:  "valid audiobook with zero page count",
			media: NewAudiobook("Becoming", "Michelle Obama", 0, "Michelle Obama", 1140),
		},
		{
			name:    "empty title",
			media:   NewBook("", "Herbert", 412),
			wantErr: true,
		},
		{
			name: "unknown kind",
			media: &Media{
				Title: "Mystery",
				Kind:  Kind("vinyl"),
				Audio: &AudioDetails{Publisher: "x", DurationMinutes: 1},
			},
			wantErr: true,
		},
		{
			name: "missing payload",
			media: &Media{
				Title: "Hollow",
				Kind:  KindBook,
			},
			wantErr: true,
		},
		{
			name: "foreign payload alongside the right one",
			media: &Media{
				Title: "Chimera",
				Kind:  KindBook,
				Book:  &BookDetails{Author: "a", PageCount: 1},
				Video: &VideoDetails{DurationMinutes: 90, Quality: "HD"},
			},
			wantErr: true,
		},
		{
			name: "payload does not match kind",
			media: &Media{
				Title: "Mislabeled",
				Kind:  KindVideo,
				Book:  &BookDetails{Author: "a", PageCount: 1},
			},
			wantErr: true,
		},
		{
			name:    "negative page count",
			media:   NewBook("Oops", "a", -1),
			wantErr: true,
		},
		{
			name:    "negative duration",
			media:   NewAudio("Oops", "pub", -10),
			wantErr: true,
		},
		{
			name:    "negative file size",
			media:   NewEbook("Oops", "a", 10, -0.5, "EPUB"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.media.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMediaAuthor(t *testing.T) {
	author, ok := NewBook("Dune", "Herbert", 412).Author()
	assert.True(t, ok)
	assert.Equal(t, "Herbert", author)

	author, ok = NewAudiobook("Becoming", "Michelle Obama", 0, "Penguin", 1140).Author()
	assert.True(t, ok)
	assert.Equal(t, "Michelle Obama", author)

	_, ok = NewVideo("Inception", 148, "4K").Author()
	assert.False(t, ok)

	_, ok = NewAudio("DSOTM", "Pink Floyd", 43).Author()
	assert.False(t, ok)
}

func TestMediaAAggregates(t *testing.T) {
	assert.Equal(t, 148, NewVideo("Inception", 148, "4K").DurationMinutes())
	assert.Equal(t, 43, NewAudio("DSOTM", "Pink Floyd", 43).DurationMinutes())
	assert.Equal(t, 1140, NewAudiobook("Becoming", "a", 0, "p", 1140).DurationMinutes())

	assert.Equal(t, 412, NewBook("Dune", "Herbert", 412).PageCount())
	assert.Equal(t, 464, NewEbook("Clean Code", "a", 464, 12.5, "PDF").PageCount())
	assert.Equal(t, 0, NewVideo("Inception", 148, "4K").PageCount())
}
