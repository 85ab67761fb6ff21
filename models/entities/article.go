package entities

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Xushengqwer/content_service/search"
)

// Article 政府/部门发布的文章
// - Content 是富文本编辑器产出的树形 JSON
// - Images 是对象引用数组 (JSON)，不校验对象是否存在
// - SearchTokens 是 (Title, Summary) 的派生检索表示，由 BeforeSave 在同一条写语句中重算
type Article struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	GovernmentID uint64 `gorm:"not null;index"`
	Category     *int
	AuthorID     *uint64
	AuthorKind   string `gorm:"type:varchar(20);not null;default:'admin'"` // admin | department
	DepartmentID *uint64

	Title     string         `gorm:"type:varchar(500);not null"`
	Summary   string         `gorm:"type:text"`
	Content   datatypes.JSON `gorm:"not null"`
	Images    datatypes.JSON
	Thumbnail *string `gorm:"type:varchar(1024)"`

	SearchTokens string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// BeforeSave 在每次 Create / Save 前重算检索表示。
// 必须通过 Create 或 Save 写入文章，Updates(map) 不会经过这里更新 SearchTokens。
func (a *Article) BeforeSave(tx *gorm.DB) error {
	a.SearchTokens = search.Index(a.Title, a.Summary)
	return nil
}
