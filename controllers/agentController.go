package controllers

import (
	"errors"
	"net/http"

	"civicguard-be/agent"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func sessionFor(c *gin.Context) (*agent.Session, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return nil, false
	}
	session, err := sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	if session.UserID != userID.(int64) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your session"})
		return nil, false
	}
	return session, true
}

func respondAgentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, agent.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, agent.ErrBadStage), errors.Is(err, agent.ErrAlreadySubmitted),
		errors.Is(err, agent.ErrRecordingActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, agent.ErrUnknownLanguage), errors.Is(err, agent.ErrAnswerRequired),
		errors.Is(err, agent.ErrInvalidOption), errors.Is(err, agent.ErrEvidenceRequired),
		errors.Is(err, agent.ErrAnalysisPending), errors.Is(err, agent.ErrRecordingInactive):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// StartSession opens a new guided reporting conversation
func StartSession(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	session := sessions.Create(userID.(int64))
	c.JSON(http.StatusCreated, session.Snapshot())
}

// GetSession returns the conversation state
func GetSession(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// ChooseLanguage fixes the session language and asks the first question
func ChooseLanguage(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}

	var input struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := session.ChooseLanguage(agent.Language(input.Language)); err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// SubmitAnswer records a typed answer for the current question
func SubmitAnswer(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}

	var input struct {
		Value   string `json:"value"`
		Skipped bool   `json:"skipped"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := session.SubmitInput(input.Value, input.Skipped); err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// SubmitSpeech records a spoken answer. An unmatched phrase does not
// advance the conversation; the reply quotes it back in the retry prompt.
func SubmitSpeech(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}

	var input struct {
		Transcript string `json:"transcript" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, matched, err := session.SubmitSpeech(input.Transcript)
	if err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"matched": matched,
		"reply":   reply,
		"state":   session.Snapshot(),
	})
}

// CapturePhoto takes one evidence still and starts its verification
func CapturePhoto(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}

	photo, warning, err := session.CapturePhoto(c.Request.Context())
	if err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"photo":   photo,
		"warning": warning,
	})
}

// RemovePhoto discards a captured still
func RemovePhoto(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
		return
	}
	if !session.RemovePhoto(photoID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo removed"})
}

// StartVideo begins the evidence recording
func StartVideo(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	warning, err := session.StartVideo(c.Request.Context())
	if err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warning": warning})
}

// VideoFrame appends one frame to the active recording
func VideoFrame(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	if err := session.VideoFrame(); err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Frame captured"})
}

// StopVideo ends the recording and files the clip as evidence
func StopVideo(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	video, err := session.StopVideo()
	if err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": video})
}

// RecordAudio captures the optional voice note
func RecordAudio(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	audio, err := session.RecordAudio(c.Request.Context())
	if err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"audio": audio})
}

// GenerateSummary runs the processing stage and returns the draft report
func GenerateSummary(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	draft, err := session.GenerateSummary(c.Request.Context())
	if err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report": draft,
		"state":  session.Snapshot(),
	})
}

// ConfirmReport files the summarized draft as a real issue. Repeated calls
// do not create duplicates.
func ConfirmReport(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	draft, err := session.Confirm()
	if err != nil {
		respondAgentError(c, err)
		return
	}
	issue := appStore.AddIssue(*draft, session.UserID)
	c.JSON(http.StatusCreated, issue)
}

// EditReport reopens the questions while keeping captured evidence
func EditReport(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	if _, err := session.EditReport(); err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// CloseSession tears the conversation down and releases device handles
func CloseSession(c *gin.Context) {
	session, ok := sessionFor(c)
	if !ok {
		return
	}
	if err := sessions.Close(session.ID); err != nil {
		respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}
