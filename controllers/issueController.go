package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"civicguard-be/models"
	"civicguard-be/store"

	"github.com/gin-gonic/gin"
)

// issueDraftInput is the shared request body for creating and editing an
// issue. The guided agent path produces the same fields through its own
// endpoints.
type issueDraftInput struct {
	Title          string   `json:"title" binding:"required,max=200"`
	Description    string   `json:"description" binding:"required,max=2000"`
	Category       string   `json:"category" binding:"required"`
	Urgency        string   `json:"urgency,omitempty"`
	District       string   `json:"district" binding:"required,max=100"`
	Panchayat      string   `json:"panchayat,omitempty"`
	Village        string   `json:"village,omitempty"`
	Street         string   `json:"street" binding:"required,max=200"`
	Landmark       string   `json:"landmark,omitempty"`
	IncidentTime   string   `json:"incidentTime,omitempty"`
	AffectedPeople string   `json:"affectedPeople,omitempty"`
	Photos         []string `json:"photos,omitempty"`
	Video          string   `json:"video,omitempty"`
	Audio          string   `json:"audio,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
	Accuracy       *float64 `json:"accuracy,omitempty"`
}

func (in issueDraftInput) toDraft() (models.ReportDraft, string) {
	if !models.ValidCategories[models.IssueCategory(in.Category)] {
		return models.ReportDraft{}, "Invalid category"
	}
	if in.Urgency != "" && !models.ValidUrgencies[models.Urgency(in.Urgency)] {
		return models.ReportDraft{}, "Invalid urgency"
	}

	draft := models.ReportDraft{
		Title:          in.Title,
		Description:    in.Description,
		Category:       models.IssueCategory(in.Category),
		Urgency:        models.Urgency(in.Urgency),
		District:       in.District,
		Panchayat:      in.Panchayat,
		Village:        in.Village,
		Street:         in.Street,
		Landmark:       in.Landmark,
		IncidentTime:   in.IncidentTime,
		AffectedPeople: in.AffectedPeople,
		Photos:         in.Photos,
		Video:          in.Video,
		Audio:          in.Audio,
	}
	if in.Lat != nil && in.Lng != nil {
		fix := models.GPSFix{Lat: *in.Lat, Lng: *in.Lng}
		if in.Accuracy != nil {
			fix.Accuracy = *in.Accuracy
		}
		draft.GPS = &fix
	}
	return draft, ""
}

func issueID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return 0, false
	}
	return id, true
}

// CreateIssue handles the manual form path of filing an issue
func CreateIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input issueDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, badField := input.toDraft()
	if badField != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": badField})
		return
	}

	issue := appStore.AddIssue(draft, userID.(int64))
	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues handles retrieving issues with filtering and sorting
func GetAllIssues(c *gin.Context) {
	filter := store.Filter{
		District:  c.Query("district"),
		Panchayat: c.Query("panchayat"),
		Village:   c.Query("village"),
		Street:    c.Query("street"),
		Search:    c.Query("search"),
		Sort:      store.SortBy(c.DefaultQuery("sort", "newest")),
	}
	if category := c.Query("category"); category != "" && category != "all" {
		filter.Category = models.IssueCategory(category)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		filter.Status = models.IssueStatus(status)
	}

	issues := appStore.Query(filter)

	var currentUserID int64
	if v, exists := c.Get("user_id"); exists {
		currentUserID = v.(int64)
	}

	type issueWithVotes struct {
		*models.Issue
		UserHasVoted bool    `json:"userHasVoted"`
		Severity     float64 `json:"severity"`
	}

	out := make([]issueWithVotes, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issueWithVotes{
			Issue:        issue,
			UserHasVoted: currentUserID != 0 && appStore.HasVoted(currentUserID, issue.ID),
			Severity:     store.SeverityScore(issue),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"issues": out,
		"total":  len(out),
	})
}

// GetIssue retrieves a single issue by ID
func GetIssue(c *gin.Context) {
	id, ok := issueID(c)
	if !ok {
		return
	}
	issue, err := appStore.GetIssue(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	c.JSON(http.StatusOK, issue)
}

// GetMyIssues lists the authenticated user's own reports
func GetMyIssues(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": appStore.IssuesByReporter(userID.(int64))})
}

// RecentIssues lists the latest geotagged reports for the map and home feed
func RecentIssues(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	c.JSON(http.StatusOK, gin.H{"issues": appStore.RecentGeotagged(limit)})
}

// UpdateIssue lets the reporter edit their own open issue
func UpdateIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input issueDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, badField := input.toDraft()
	if badField != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": badField})
		return
	}

	issue, err := appStore.UpdateIssue(id, userID.(int64), draft)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// DeleteIssue lets the reporter withdraw their own open issue
func DeleteIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	if err := appStore.DeleteIssue(id, userID.(int64)); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted"})
}

// HandleVoteOnIssue registers a community upvote. Voting twice from the
// same account is a no-op, not a toggle.
func HandleVoteOnIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	upvotes, voted, err := appStore.VoteIssue(userID.(int64), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"upvotes": upvotes,
		"voted":   voted,
	})
}

// UpdateIssueStatus moves an issue along its lifecycle. Leader only.
func UpdateIssueStatus(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
		Proof  *struct {
			Image       string `json:"image" binding:"required"`
			Description string `json:"description,omitempty"`
		} `json:"proof,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.IssueStatus(input.Status)
	if !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var proof *models.ResolutionProof
	if input.Proof != nil {
		proof = &models.ResolutionProof{
			Image:       input.Proof.Image,
			Description: input.Proof.Description,
		}
	}

	issue, err := appStore.UpdateStatus(id, actor, status, proof)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// UpdateIssueTriage sets the official priority and assignee. Leader only.
func UpdateIssueTriage(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input struct {
		Priority   *string `json:"priority,omitempty"`
		AssignedTo *string `json:"assignedTo,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var priority *models.Priority
	if input.Priority != nil {
		p := models.Priority(*input.Priority)
		if !models.ValidPriorities[p] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
			return
		}
		priority = &p
	}

	issue, err := appStore.UpdateTriage(id, actor, priority, input.AssignedTo)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// GetIssueAnalytics returns the dashboard aggregates
func GetIssueAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, appStore.ComputeAnalytics())
}

func requireUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}
	user, err := appStore.GetUser(userID.(int64))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return user, true
}

func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
	case errors.Is(err, store.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the reporter of this issue"})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Leader access required"})
	case errors.Is(err, store.ErrIssueFinal):
		c.JSON(http.StatusConflict, gin.H{"error": "Issue is already finalized"})
	case errors.Is(err, store.ErrBadTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
	case errors.Is(err, store.ErrProofRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Resolution proof is required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}
