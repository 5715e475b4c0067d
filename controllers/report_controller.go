package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/servihub/reports-api/models"
	"github.com/servihub/reports-api/stores"
	"github.com/servihub/reports-api/utils"
)

type ReportController struct {
	Store *stores.ReportStore
}

func NewReportController(store *stores.ReportStore) *ReportController {
	return &ReportController{Store: store}
}

type listReportsQuery struct {
	Status    string `form:"status,default=all" binding:"omitempty,oneof=all resolved unresolved"`
	Type      string `form:"type,default=all" binding:"omitempty,oneof=all review user business service other"`
	SortBy    string `form:"sortBy,default=created_at"`
	SortOrder string `form:"sortOrder,default=desc"`
	Page      int    `form:"page,default=1" binding:"min=1"`
	Limit     int    `form:"limit,default=10" binding:"min=1,max=100"`
}

// sortColumns is the closed set of sortable fields. Anything else is coerced
// to created_at; caller input never reaches the query as a column name.
var sortColumns = map[string]string{
	"id":          "id",
	"created_at":  "created_at",
	"resolved_at": "resolved_at",
	"type":        "type",
}

func (q *listReportsQuery) sortColumn() string {
	if column, ok := sortColumns[q.SortBy]; ok {
		return column
	}
	return "created_at"
}

func (q *listReportsQuery) sortDirection() string {
	if q.SortOrder == "asc" {
		return "asc"
	}
	return "desc"
}

type createReportInput struct {
	Type        string  `json:"type" binding:"required,oneof=review user business service other"`
	TargetID    int64   `json:"target_id" binding:"required,min=1"`
	Reason      string  `json:"reason" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	SubmittedBy *int64  `json:"submitted_by"`
}

type resolveReportInput struct {
	ID     string `json:"id" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
}

// CreateReport files a new report. The submitter comes from the verified
// session when one is present; the body field only applies to anonymous
// calls.
func (rc *ReportController) CreateReport(c *gin.Context) {
	var input createReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := models.Report{
		Type:        input.Type,
		TargetID:    input.TargetID,
		Reason:      input.Reason,
		Description: input.Description,
		SubmittedBy: input.SubmittedBy,
	}
	if claims := utils.CurrentUser(c); claims != nil {
		report.SubmittedBy = &claims.UserID
	}

	if err := rc.Store.Create(&report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Report submitted successfully"})
}

// ListReports returns one filtered, sorted page of reports with pagination
// metadata. A page past the end is an empty data array, not an error.
func (rc *ReportController) ListReports(c *gin.Context) {
	var query listReportsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := stores.ReportFilter{Status: query.Status, Type: query.Type}

	total, err := rc.Store.Count(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports", "details": err.Error()})
		return
	}

	offset := (query.Page - 1) * query.Limit
	reports, err := rc.Store.List(filter, query.sortColumn(), query.sortDirection(), offset, query.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports", "details": err.Error()})
		return
	}

	data := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		data = append(data, toReportResponse(&reports[i]))
	}

	totalPages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	c.JSON(http.StatusOK, ReportListResponse{
		Data: data,
		Pagination: PaginationMeta{
			Total:      total,
			Page:       query.Page,
			Limit:      query.Limit,
			TotalPages: totalPages,
		},
	})
}

// ResolveReport marks a report resolved, recording the resolver and the
// resolution time. Re-resolution is rejected with a conflict.
func (rc *ReportController) ResolveReport(c *gin.Context) {
	var input resolveReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportID, err := strconv.ParseInt(input.ID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}
	resolverID, err := strconv.ParseInt(input.UserID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	// The resolver must be the verified session identity, not whatever the
	// body claims.
	if claims := utils.CurrentUser(c); claims != nil && claims.UserID != resolverID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Resolver does not match session"})
		return
	}

	report, err := rc.Store.Resolve(reportID, resolverID)
	switch {
	case errors.Is(err, stores.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	case errors.Is(err, stores.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": "Report already resolved"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve report", "details": err.Error()})
	default:
		c.JSON(http.StatusOK, toReportResponse(report))
	}
}

// AdminListReports serves the admin area listing. The gate already redirects
// non-admins; the role is re-checked here in case it is bypassed.
func (rc *ReportController) AdminListReports(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil || user.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
	rc.ListReports(c)
}
