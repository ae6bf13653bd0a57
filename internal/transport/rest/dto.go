package rest

import (
	"time"

	"github.com/leadflow/leadflow-backend/internal/domain"
)

type userResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	ProfilePic string     `json:"profilePic"`
	Phone      string     `json:"phone"`
	Location   string     `json:"location"`
	DOB        *string    `json:"dob"`
	LastLogin  *time.Time `json:"lastLogin"`
	LastActive *time.Time `json:"lastActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	// Status is only set in the admin user list.
	Status string `json:"status,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role.String(),
		ProfilePic: u.ProfilePic,
		Phone:      u.Phone,
		Location:   u.Location,
		LastLogin:  u.LastLogin,
		LastActive: u.LastActive,
		CreatedAt:  u.CreatedAt,
	}
	if u.DOB != nil {
		dob := u.DOB.Format("2006-01-02")
		resp.DOB = &dob
	}
	return resp
}

type userRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type leadResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Source     string           `json:"source"`
	Status     string           `json:"status"`
	Tags       []string         `json:"tags"`
	Notes      []noteResponse   `json:"notes"`
	AssignedTo *userRefResponse `json:"assignedTo"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func toLeadResponse(l *domain.Lead) leadResponse {
	resp := leadResponse{
		ID:        l.ID.String(),
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Source:    l.Source,
		Status:    l.Status.String(),
		Tags:      l.Tags,
		Notes:     make([]noteResponse, 0, len(l.Notes)),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	for _, n := range l.Notes {
		resp.Notes = append(resp.Notes, noteResponse{
			ID:        n.ID.String(),
			Text:      n.Text,
			Author:    n.Author,
			CreatedAt: n.CreatedAt,
		})
	}
	switch {
	case l.Assignee != nil:
		resp.AssignedTo = &userRefResponse{ID: l.Assignee.ID.String(), Name: l.Assignee.Name, Email: l.Assignee.Email}
	case l.AssignedTo != nil:
		resp.AssignedTo = &userRefResponse{ID: l.AssignedTo.String()}
	}
	return resp
}

type paginationResponse struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

type leadPageResponse struct {
	Items      []leadResponse     `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

type activityResponse struct {
	ID        string           `json:"id"`
	User      *userRefResponse `json:"user"`
	UserID    string           `json:"userId"`
	Action    string           `json:"action"`
	Details   string           `json:"details"`
	IPAddress string           `json:"ipAddress"`
	CreatedAt time.Time        `json:"createdAt"`
}

func toActivityResponse(a domain.ActivityLog) activityResponse {
	resp := activityResponse{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		Action:    a.Action.String(),
		Details:   a.Details,
		IPAddress: a.IPAddress,
		CreatedAt: a.CreatedAt,
	}
	if a.Actor != nil {
		resp.User = &userRefResponse{ID: a.Actor.ID.String(), Name: a.Actor.Name, Email: a.Actor.Email}
	}
	return resp
}
