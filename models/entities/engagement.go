package entities

import "time"

// Like 点赞关系，(user_id, post_id) 唯一
type Like struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;uniqueIndex:idx_likes_user_post"`
	PostID    uint64 `gorm:"not null;uniqueIndex:idx_likes_user_post"`
	CreatedAt time.Time

	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Bookmark 收藏关系，(user_id, post_id) 唯一
type Bookmark struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;uniqueIndex:idx_bookmarks_user_post"`
	PostID    uint64 `gorm:"not null;uniqueIndex:idx_bookmarks_user_post"`
	CreatedAt time.Time

	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Comment 帖子评论。只追加，不提供编辑；随帖子级联删除。
// IsOfficial 为 true 时表示部门官方回复，DepartmentID/DepartmentName 标识回复部门。
type Comment struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	UserID         uint64 `gorm:"not null"`
	PostID         uint64 `gorm:"not null;index"`
	Content        string `gorm:"type:text;not null"`
	IsOfficial     bool   `gorm:"not null;default:false"`
	DepartmentID   *uint64
	DepartmentName *string `gorm:"type:varchar(255)"`
	CreatedAt      time.Time

	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
