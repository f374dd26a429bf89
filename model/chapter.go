package model

import (
	"github.com/Laisky/errors/v2"

	"github.com/handboekai/handboek-api/common/helper"
)

// Chapter generation status. Zero is not used so a missing value is
// distinguishable from a real one.
const (
	ChapterStatusDraft      = 1
	ChapterStatusGenerating = 2
	ChapterStatusDone       = 3
	ChapterStatusFailed     = 4
)

type Chapter struct {
	Id           int    `json:"id"`
	HandbookId   int    `json:"handbook_id" gorm:"index"`
	ChapterIndex int    `json:"chapter_index" gorm:"index"`
	Title        string `json:"title"`
	Content      string `json:"content" gorm:"type:text"`
	Status       int    `json:"status" gorm:"default:1"`
	// Model and token counts record what the generation actually used.
	Model            string `json:"model"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	CreatedTime      int64  `json:"created_time" gorm:"bigint"`
	UpdatedTime      int64  `json:"updated_time" gorm:"bigint"`
}

func (ch *Chapter) Insert() error {
	if ch.HandbookId == 0 {
		return errors.New("handbook id is empty")
	}
	if ch.Status == 0 {
		ch.Status = ChapterStatusDraft
	}
	ch.CreatedTime = helper.GetTimestamp()
	ch.UpdatedTime = ch.CreatedTime
	return errors.Wrap(DB.Create(ch).Error, "insert chapter")
}

// Update persists the full chapter row. Generation finishes concurrently
// with interactive edits, so SQLite lock errors are retried.
func (ch *Chapter) Update() error {
	ch.UpdatedTime = helper.GetTimestamp()
	err := runWithSQLiteBusyRetry(nil, func() error {
		return DB.Model(ch).
			Select("title", "content", "status", "model", "prompt_tokens", "completion_tokens", "chapter_index", "updated_time").
			Updates(ch).Error
	})
	return errors.Wrap(err, "update chapter")
}

func (ch *Chapter) Delete() error {
	if ch.Id == 0 {
		return errors.New("id is empty")
	}
	return errors.Wrap(DB.Delete(ch).Error, "delete chapter")
}

// UpdateChapterStatus flips only the status column, used by the generation
// pipeline around the streaming call.
func UpdateChapterStatus(id int, status int) error {
	err := runWithSQLiteBusyRetry(nil, func() error {
		return DB.Model(&Chapter{}).Where("id = ?", id).
			Updates(map[string]any{"status": status, "updated_time": helper.GetTimestamp()}).Error
	})
	return errors.Wrapf(err, "update chapter %d status", id)
}

// GetChapterById loads a chapter and verifies, through its handbook, that it
// belongs to ownerKey.
func GetChapterById(id int, ownerKey string) (*Chapter, error) {
	if id == 0 {
		return nil, errors.New("id is empty")
	}
	var chapter Chapter
	err := DB.Joins("JOIN handbooks ON handbooks.id = chapters.handbook_id").
		Where("chapters.id = ? AND handbooks.owner_key = ?", id, ownerKey).
		First(&chapter).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get chapter %d", id)
	}
	return &chapter, nil
}

func GetChaptersByHandbookId(handbookId int) ([]*Chapter, error) {
	var chapters []*Chapter
	err := DB.Where("handbook_id = ?", handbookId).
		Order("chapter_index asc").Find(&chapters).Error
	return chapters, errors.Wrap(err, "list chapters")
}

// NextChapterIndex returns one past the highest chapter index in use.
func NextChapterIndex(handbookId int) (int, error) {
	var maxIndex int
	err := DB.Model(&Chapter{}).Where("handbook_id = ?", handbookId).
		Select("COALESCE(MAX(chapter_index), 0)").Scan(&maxIndex).Error
	if err != nil {
		return 0, errors.Wrap(err, "next chapter index")
	}
	return maxIndex + 1, nil
}

// GetChapterTitles returns the titles of finished chapters before the given
// index, for prompt continuity.
func GetChapterTitles(handbookId int, beforeIndex int) ([]string, error) {
	var titles []string
	err := DB.Model(&Chapter{}).
		Where("handbook_id = ? AND chapter_index < ? AND status = ?", handbookId, beforeIndex, ChapterStatusDone).
		Order("chapter_index asc").
		Pluck("title", &titles).Error
	return titles, errors.Wrap(err, "list chapter titles")
}
