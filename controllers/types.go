package controllers

import (
	"strconv"
	"time"

	"github.com/servihub/reports-api/models"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type ReportListResponse struct {
	Data       []ReportResponse `json:"data"`
	Pagination PaginationMeta   `json:"pagination"`
}

// Wire projections. Wide numeric ids are serialized as decimal strings so
// they survive clients whose native number type tops out at 2^53.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ReportResponse struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	TargetID    string        `json:"target_id"`
	Reason      string        `json:"reason"`
	Description *string       `json:"description"`
	SubmittedBy *string       `json:"submitted_by"`
	ResolvedBy  *string       `json:"resolved_by"`
	ResolvedAt  *time.Time    `json:"resolved_at"`
	CreatedAt   time.Time     `json:"created_at"`
	Submitter   *UserResponse `json:"submitter"`
	Resolver    *UserResponse `json:"resolver"`
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatIDPtr(id *int64) *string {
	if id == nil {
		return nil
	}
	s := formatID(*id)
	return &s
}

func toUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        formatID(user.ID),
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func toReportResponse(report *models.Report) ReportResponse {
	return ReportResponse{
		ID:          formatID(report.ID),
		Type:        report.Type,
		TargetID:    formatID(report.TargetID),
		Reason:      report.Reason,
		Description: report.Description,
		SubmittedBy: formatIDPtr(report.SubmittedBy),
		ResolvedBy:  formatIDPtr(report.ResolvedBy),
		ResolvedAt:  report.ResolvedAt,
		CreatedAt:   report.CreatedAt,
		Submitter:   toUserResponse(report.Submitter),
		Resolver:    toUserResponse(report.Resolver),
	}
}
