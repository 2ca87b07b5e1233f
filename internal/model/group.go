package model

// Group is a fellowship group: the unit people gather, pray and
// track streaks in.
// swagger:model Group
type Group struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	CoverImage  string `gorm:"size:255" json:"coverImage"`
	Focus       string `gorm:"size:50" json:"focus"` // e.g. "prayer", "bible-study", "worship"
	CreatorID   uint   `gorm:"index;type:bigint unsigned;not null" json:"creatorId"`
	IsPrivate   bool   `gorm:"default:false" json:"isPrivate"`
	MemberCount int    `gorm:"default:0" json:"memberCount"`
}

func (Group) TableName() string {
	return "groups"
}

type GroupMemberRole string

const (
	GroupShepherd GroupMemberRole = "shepherd"
	GroupMember   GroupMemberRole = "member"
)

// swagger:model GroupMembership
type GroupMembership struct {
	BaseModel
	GroupID uint            `gorm:"index:idx_group_user,unique;type:bigint unsigned;not null" json:"groupId"`
	UserID  uint            `gorm:"index:idx_group_user,unique;type:bigint unsigned;not null" json:"userId"`
	Role    GroupMemberRole `gorm:"type:enum('shepherd','member');default:'member'" json:"role"`
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}
