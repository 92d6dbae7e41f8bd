// Package domain defines the persistence models for groups, memberships,
// join requests, posts and post interactions. These types are mapped with
// GORM and form the core data layer of the community backend.
package domain

import (
	"time"
)

// Group is a sports community. Users belong to it through Memberships.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name / Description: display metadata, editable by group managers.
//   - ImageURL: reference to an externally stored image (upload is external).
//   - CreatorID: identifier of the user who created the group.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Group struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name"        gorm:"type:varchar(120);not null"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	ImageURL    string    `json:"image_url"   gorm:"type:varchar(512);not null;default:''"`
	CreatorID   string    `json:"creator_id"  gorm:"type:varchar(64);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Group.
func (Group) TableName() string { return "groups" }

// Membership is the durable relation granting a user a role within a group.
// At most one row exists per (user_id, group_id); the unique index is the
// final arbiter when two writers race past the service-level check.
//
// Memberships are hard-deleted so that a user who leaves can join again.
type Membership struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index;uniqueIndex:ux_memberships_user_group,priority:1"`
	GroupID   string    `json:"group_id"   gorm:"type:char(36);not null;index:idx_group_members,priority:1;uniqueIndex:ux_memberships_user_group,priority:2"`
	Role      Role      `json:"role"       gorm:"type:varchar(16);not null;default:'MEMBER';check:role IN ('ADMIN','MEMBER')"`
	IsCreator bool      `json:"is_creator" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_group_members,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`

	// Group is the owning community. Memberships are cascade-deleted with it.
	Group Group `json:"-" gorm:"foreignKey:GroupID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Membership.
func (Membership) TableName() string { return "memberships" }

// JoinRequest is a pending proposal to establish a Membership. It unifies
// user-initiated requests (MadeBy USER) and group invites (MadeBy GROUP).
//
// At most one PENDING row exists per (user_id, group_id). That invariant is
// enforced by a partial unique index created in repo.AutoMigrate, since the
// uniqueness only applies while the request is open.
type JoinRequest struct {
	ID          string            `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID      string            `json:"user_id"      gorm:"type:varchar(64);not null;index:idx_join_requests_user_group,priority:1"`
	GroupID     string            `json:"group_id"     gorm:"type:char(36);not null;index:idx_join_requests_user_group,priority:2"`
	Status      JoinRequestStatus `json:"status"       gorm:"type:varchar(16);not null;default:'PENDING';index;check:status IN ('PENDING','APPROVED','REJECTED')"`
	MadeBy      MadeBy            `json:"made_by"      gorm:"type:varchar(8);not null;check:made_by IN ('USER','GROUP')"`
	CreatedBy   string            `json:"created_by"   gorm:"type:varchar(64);not null"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	RespondedAt *time.Time        `json:"responded_at,omitempty"`

	Group Group `json:"-" gorm:"foreignKey:GroupID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for JoinRequest.
func (JoinRequest) TableName() string { return "join_requests" }

// Post is a publication inside a community. It carries three denormalized
// counters that must always equal the number of live rows in post_likes,
// attendances and comments for the post. They are only ever changed in the
// same transaction that inserts or deletes the corresponding row.
type Post struct {
	ID               string    `json:"id"                gorm:"type:char(36);primaryKey"`
	AuthorID         string    `json:"author_id"         gorm:"type:varchar(64);not null;index"`
	GroupID          *string   `json:"group_id,omitempty" gorm:"type:char(36);index"`
	Content          string    `json:"content"           gorm:"type:text;not null"`
	LikesCount       int64     `json:"likes_count"       gorm:"not null;default:0;check:likes_count >= 0"`
	CommentsCount    int64     `json:"comments_count"    gorm:"not null;default:0;check:comments_count >= 0"`
	AttendancesCount int64     `json:"attendances_count" gorm:"not null;default:0;check:attendances_count >= 0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string { return "posts" }

// PostLike records that a user liked a post. One per (user_id, post_id).
type PostLike struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_post_likes_user_post,priority:1"`
	PostID    string    `json:"post_id"    gorm:"type:char(36);not null;index;uniqueIndex:ux_post_likes_user_post,priority:2"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for PostLike.
func (PostLike) TableName() string { return "post_likes" }

// Attendance records that a user confirmed presence at the event a post
// announces. One per (user_id, post_id).
type Attendance struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_attendances_user_post,priority:1"`
	PostID    string    `json:"post_id"    gorm:"type:char(36);not null;index;uniqueIndex:ux_attendances_user_post,priority:2"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Attendance.
func (Attendance) TableName() string { return "attendances" }

// Comment is a free-form reply on a post. A user may comment many times.
type Comment struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	AuthorID  string    `json:"author_id"  gorm:"type:varchar(64);not null;index"`
	PostID    string    `json:"post_id"    gorm:"type:char(36);not null;index:idx_post_comments,priority:1"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_post_comments,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`

	Post Post `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }
