package model

import (
	"github.com/Laisky/errors/v2"
	"gorm.io/gorm"

	"github.com/handboekai/handboek-api/common/helper"
)

// Handbook is a teacher-owned textbook; chapters hang off it. OwnerKey comes
// from the bearer token and scopes every query, rows never cross owners.
type Handbook struct {
	Id          int    `json:"id"`
	OwnerKey    string `json:"-" gorm:"index;type:varchar(191)"`
	Title       string `json:"title" gorm:"index"`
	Subject     string `json:"subject"`
	Level       string `json:"level"`
	Description string `json:"description" gorm:"type:text"`
	TemplateID  string `json:"template_id"`
	CreatedTime int64  `json:"created_time" gorm:"bigint"`
	UpdatedTime int64  `json:"updated_time" gorm:"bigint"`

	Chapters []*Chapter `json:"chapters,omitempty" gorm:"foreignKey:HandbookId"`
}

func (h *Handbook) Insert() error {
	if h.Title == "" {
		return errors.New("title is empty")
	}
	h.CreatedTime = helper.GetTimestamp()
	h.UpdatedTime = h.CreatedTime
	return errors.Wrap(DB.Create(h).Error, "insert handbook")
}

func (h *Handbook) Update() error {
	h.UpdatedTime = helper.GetTimestamp()
	err := DB.Model(h).Select("title", "subject", "level", "description", "template_id", "updated_time").Updates(h).Error
	return errors.Wrap(err, "update handbook")
}

// Delete removes the handbook together with its chapters and share links.
func (h *Handbook) Delete() error {
	if h.Id == 0 {
		return errors.New("id is empty")
	}
	if err := DB.Where("handbook_id = ?", h.Id).Delete(&Chapter{}).Error; err != nil {
		return errors.Wrap(err, "delete chapters")
	}
	if err := DB.Where("handbook_id = ?", h.Id).Delete(&ShareLink{}).Error; err != nil {
		return errors.Wrap(err, "delete share links")
	}
	return errors.Wrap(DB.Delete(h).Error, "delete handbook")
}

func GetHandbookById(id int, ownerKey string) (*Handbook, error) {
	if id == 0 {
		return nil, errors.New("id is empty")
	}
	var handbook Handbook
	err := DB.First(&handbook, "id = ? and owner_key = ?", id, ownerKey).Error
	if err != nil {
		return nil, errors.Wrapf(err, "get handbook %d", id)
	}
	return &handbook, nil
}

// GetHandbookWithChapters loads the handbook and its chapters ordered by
// chapter index. Used by the share page and the detail endpoint.
func GetHandbookWithChapters(id int, ownerKey string) (*Handbook, error) {
	if id == 0 {
		return nil, errors.New("id is empty")
	}
	var handbook Handbook
	db := DB.Preload("Chapters", func(db *gorm.DB) *gorm.DB {
		return db.Order("chapter_index asc")
	})
	var err error
	if ownerKey == "" {
		err = db.First(&handbook, "id = ?", id).Error
	} else {
		err = db.First(&handbook, "id = ? and owner_key = ?", id, ownerKey).Error
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get handbook %d with chapters", id)
	}
	return &handbook, nil
}

func GetHandbooks(ownerKey string, startIdx int, num int) ([]*Handbook, error) {
	var handbooks []*Handbook
	err := DB.Where("owner_key = ?", ownerKey).
		Order("id desc").Limit(num).Offset(startIdx).Find(&handbooks).Error
	return handbooks, errors.Wrap(err, "list handbooks")
}

func GetHandbookCount(ownerKey string) (count int64, err error) {
	err = DB.Model(&Handbook{}).Where("owner_key = ?", ownerKey).Count(&count).Error
	return count, errors.Wrap(err, "count handbooks")
}
