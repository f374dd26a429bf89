package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandbookCRUD(t *testing.T) {
	setupTestDatabase(t)

	handbook := &Handbook{
		OwnerKey:   "owner-aaaaaaaaaaaaaaaa",
		Title:      "Biologie 3havo",
		Subject:    "biologie",
		Level:      "3havo",
		TemplateID: "standaard",
	}
	require.NoError(t, handbook.Insert())
	require.NotZero(t, handbook.Id)
	assert.NotZero(t, handbook.CreatedTime)

	t.Run("insert requires a title", func(t *testing.T) {
		err := (&Handbook{OwnerKey: "owner-aaaaaaaaaaaaaaaa"}).Insert()
		assert.Error(t, err)
	})

	t.Run("lookup is scoped by owner", func(t *testing.T) {
		got, err := GetHandbookById(handbook.Id, "owner-aaaaaaaaaaaaaaaa")
		require.NoError(t, err)
		assert.Equal(t, "Biologie 3havo", got.Title)

		_, err = GetHandbookById(handbook.Id, "other-owner-bbbbbbbb")
		assert.Error(t, err)
	})

	t.Run("update preserves owner scoping fields", func(t *testing.T) {
		handbook.Title = "Biologie 4havo"
		handbook.Level = "4havo"
		require.NoError(t, handbook.Update())

		got, err := GetHandbookById(handbook.Id, "owner-aaaaaaaaaaaaaaaa")
		require.NoError(t, err)
		assert.Equal(t, "Biologie 4havo", got.Title)
		assert.Equal(t, "4havo", got.Level)
	})

	t.Run("list and count", func(t *testing.T) {
		second := &Handbook{OwnerKey: "owner-aaaaaaaaaaaaaaaa", Title: "Scheikunde"}
		require.NoError(t, second.Insert())

		handbooks, err := GetHandbooks("owner-aaaaaaaaaaaaaaaa", 0, 10)
		require.NoError(t, err)
		assert.Len(t, handbooks, 2)

		count, err := GetHandbookCount("owner-aaaaaaaaaaaaaaaa")
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)

		count, err = GetHandbookCount("other-owner-bbbbbbbb")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("delete cascades to chapters and share links", func(t *testing.T) {
		chapter := &Chapter{HandbookId: handbook.Id, ChapterIndex: 1, Title: "Cellen"}
		require.NoError(t, chapter.Insert())
		_, err := CreateShareLink(handbook.Id, 1)
		require.NoError(t, err)

		require.NoError(t, handbook.Delete())

		_, err = GetHandbookById(handbook.Id, "owner-aaaaaaaaaaaaaaaa")
		assert.Error(t, err)
		chapters, err := GetChaptersByHandbookId(handbook.Id)
		require.NoError(t, err)
		assert.Empty(t, chapters)
		links, err := GetShareLinks(handbook.Id)
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}

func TestGetHandbookWithChapters(t *testing.T) {
	setupTestDatabase(t)

	handbook := &Handbook{OwnerKey: "owner-cccccccccccccccc", Title: "Geschiedenis"}
	require.NoError(t, handbook.Insert())

	for i, title := range []string{"Prehistorie", "Oudheid", "Middeleeuwen"} {
		ch := &Chapter{HandbookId: handbook.Id, ChapterIndex: i + 1, Title: title, Status: ChapterStatusDone}
		require.NoError(t, ch.Insert())
	}

	got, err := GetHandbookWithChapters(handbook.Id, "owner-cccccccccccccccc")
	require.NoError(t, err)
	require.Len(t, got.Chapters, 3)
	assert.Equal(t, "Prehistorie", got.Chapters[0].Title)
	assert.Equal(t, "Middeleeuwen", got.Chapters[2].Title)

	t.Run("empty owner skips scoping for share pages", func(t *testing.T) {
		got, err := GetHandbookWithChapters(handbook.Id, "")
		require.NoError(t, err)
		assert.Len(t, got.Chapters, 3)
	})
}

func TestChapterQueries(t *testing.T) {
	setupTestDatabase(t)

	handbook := &Handbook{OwnerKey: "owner-dddddddddddddddd", Title: "Natuurkunde"}
	require.NoError(t, handbook.Insert())

	first := &Chapter{HandbookId: handbook.Id, ChapterIndex: 1, Title: "Kracht", Status: ChapterStatusDone}
	require.NoError(t, first.Insert())
	second := &Chapter{HandbookId: handbook.Id, ChapterIndex: 2, Title: "Energie", Status: ChapterStatusDraft}
	require.NoError(t, second.Insert())

	t.Run("next chapter index", func(t *testing.T) {
		next, err := NextChapterIndex(handbook.Id)
		require.NoError(t, err)
		assert.Equal(t, 3, next)

		next, err = NextChapterIndex(99999)
		require.NoError(t, err)
		assert.Equal(t, 1, next)
	})

	t.Run("prior titles only cover finished chapters", func(t *testing.T) {
		titles, err := GetChapterTitles(handbook.Id, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"Kracht"}, titles)
	})

	t.Run("chapter lookup is scoped through the handbook owner", func(t *testing.T) {
		got, err := GetChapterById(first.Id, "owner-dddddddddddddddd")
		require.NoError(t, err)
		assert.Equal(t, "Kracht", got.Title)

		_, err = GetChapterById(first.Id, "someone-else-aaaaaaa")
		assert.Error(t, err)
	})

	t.Run("status transition", func(t *testing.T) {
		require.NoError(t, UpdateChapterStatus(second.Id, ChapterStatusGenerating))
		got, err := GetChapterById(second.Id, "owner-dddddddddddddddd")
		require.NoError(t, err)
		assert.Equal(t, ChapterStatusGenerating, got.Status)
	})
}
