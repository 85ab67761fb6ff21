package entities

import "time"

// Post 用户发布的帖子
// - 表名: posts
// - 互动计数（点赞/收藏/评论）不落库，读取时聚合，见 PostWithStats
type Post struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID uint64 `gorm:"not null;index"` // 作者

	Title    string `gorm:"type:varchar(255);not null"`
	Content  string `gorm:"type:text;not null"`
	Category string `gorm:"type:varchar(50);not null;default:'general'"`
	PostType string `gorm:"type:varchar(30);not null;default:'text'"`

	// Location 是作者填写的地点描述，与坐标独立
	Location  string `gorm:"type:varchar(255)"`
	Latitude  *float64
	Longitude *float64

	// AISummary 由摘要 worker 异步回填，可能永远为空
	AISummary *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// PostMedia 帖子附带的媒体引用，只保存对象键/URL，不保存文件内容
// - 表名: post_media
type PostMedia struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	PostID       uint64 `gorm:"not null;index"`
	MediaType    string `gorm:"type:varchar(20);not null;default:'image'"`
	ObjectKey    string `gorm:"type:varchar(512)"`
	MediaURL     string `gorm:"type:varchar(1024);not null"`
	DisplayOrder int    `gorm:"not null;default:0"`
	CreatedAt    time.Time

	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (PostMedia) TableName() string {
	return "post_media"
}

// PostWithStats 是帖子及其读取时聚合的互动计数
type PostWithStats struct {
	Post
	LikeCount     int64
	BookmarkCount int64
	CommentCount  int64
}
