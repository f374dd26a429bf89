package model

import (
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/common/helper"
	"github.com/handboekai/handboek-api/common/random"
)

// ShareLink exposes a handbook read-only under a random slug. The row carries
// a JWT bound to the handbook; resolving a slug verifies the token signature
// and expiry, so rotating ShareLinkSecret invalidates every outstanding link.
type ShareLink struct {
	Id          int    `json:"id"`
	HandbookId  int    `json:"handbook_id" gorm:"index"`
	Slug        string `json:"slug" gorm:"type:varchar(64);uniqueIndex"`
	Token       string `json:"-" gorm:"type:text"`
	CreatedTime int64  `json:"created_time" gorm:"bigint"`
	ExpiredTime int64  `json:"expired_time" gorm:"bigint"`
	Revoked     bool   `json:"revoked"`
}

type shareClaims struct {
	HandbookId int `json:"handbook_id"`
	jwt.RegisteredClaims
}

// CreateShareLink mints a share link for the handbook. ttlHours falls back to
// the configured default when not positive.
func CreateShareLink(handbookId int, ttlHours int) (*ShareLink, error) {
	if handbookId == 0 {
		return nil, errors.New("handbook id is empty")
	}
	if ttlHours <= 0 {
		ttlHours = config.ShareLinkTTLHours
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(ttlHours) * time.Hour)

	claims := shareClaims{
		HandbookId: handbookId,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.SystemName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.ShareLinkSecret))
	if err != nil {
		return nil, errors.Wrap(err, "sign share token")
	}

	link := &ShareLink{
		HandbookId:  handbookId,
		Slug:        random.GetRandomString(16),
		Token:       token,
		CreatedTime: helper.GetTimestamp(),
		ExpiredTime: expiresAt.Unix(),
	}
	if err := DB.Create(link).Error; err != nil {
		return nil, errors.Wrap(err, "insert share link")
	}
	return link, nil
}

var (
	ErrShareLinkNotFound = errors.New("share link not found")
	ErrShareLinkExpired  = errors.New("share link expired")
)

// ResolveShareLink maps a slug to its handbook id, rejecting revoked links
// and links whose token no longer verifies.
func ResolveShareLink(slug string) (handbookId int, err error) {
	if slug == "" {
		return 0, ErrShareLinkNotFound
	}
	var link ShareLink
	if err := DB.First(&link, "slug = ?", slug).Error; err != nil {
		return 0, ErrShareLinkNotFound
	}
	if link.Revoked {
		return 0, ErrShareLinkNotFound
	}

	var claims shareClaims
	_, err = jwt.ParseWithClaims(link.Token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(config.ShareLinkSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrShareLinkExpired
		}
		return 0, ErrShareLinkNotFound
	}
	if claims.HandbookId != link.HandbookId {
		return 0, ErrShareLinkNotFound
	}
	return link.HandbookId, nil
}

// RevokeShareLinks disables every outstanding link for a handbook.
func RevokeShareLinks(handbookId int) error {
	err := DB.Model(&ShareLink{}).Where("handbook_id = ?", handbookId).
		Update("revoked", true).Error
	return errors.Wrapf(err, "revoke share links for handbook %d", handbookId)
}

func GetShareLinks(handbookId int) ([]*ShareLink, error) {
	var links []*ShareLink
	err := DB.Where("handbook_id = ?", handbookId).Order("id desc").Find(&links).Error
	return links, errors.Wrap(err, "list share links")
}
