package group

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name            string  `json:"name" validate:"required,min=1,max=100"`
	Description     *string `json:"description,omitempty"`
	DefaultCurrency string  `json:"default_currency" validate:"required,len=3"`
}

// UpdateGroupRequest represents the request to update a group
type UpdateGroupRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description     *string `json:"description,omitempty"`
	DefaultCurrency *string `json:"default_currency,omitempty" validate:"omitempty,len=3"`
}

// AddMemberRequest represents the request to add a member to a group
type AddMemberRequest struct {
	UserID int64      `json:"user_id" validate:"required"`
	Role   MemberRole `json:"role"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Description     *string           `json:"description,omitempty"`
	DefaultCurrency string            `json:"default_currency"`
	CreatedAt       string            `json:"created_at"`
	Members         []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	ID       int64      `json:"id"`
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     MemberRole `json:"role"`
	JoinedAt string     `json:"joined_at"`
}

const timeLayout = "2006-01-02T15:04:05Z"

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:              g.ID,
		Name:            g.Name,
		Description:     g.Description,
		DefaultCurrency: g.DefaultCurrency,
		CreatedAt:       g.CreatedAt.Format(timeLayout),
	}
}

// ToResponse converts a GroupMember model to a MemberResponse DTO
func (m *GroupMember) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Username: m.Username,
		Email:    m.Email,
		Role:     m.Role,
		JoinedAt: m.JoinedAt.Format(timeLayout),
	}
}
