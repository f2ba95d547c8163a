package api

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// RuntimeSettings holds settings that can be changed without a restart
type RuntimeSettings struct {
	mu             sync.RWMutex
	speechLanguage string
}

func NewRuntimeSettings(speechLanguage string) *RuntimeSettings {
	return &RuntimeSettings{speechLanguage: speechLanguage}
}

// SpeechLanguage returns the current recognition language (BCP-47, e.g. ru-RU)
func (s *RuntimeSettings) SpeechLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speechLanguage
}

func (s *RuntimeSettings) SetSpeechLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speechLanguage = lang
}

// UpdateSpeechSettingsRequest represents the request body for updating speech settings
type UpdateSpeechSettingsRequest struct {
	Language string `json:"language" binding:"required"`
}

// GetSpeechSettings returns current speech recognition configuration
// GET /api/settings/speech
func (s *RuntimeSettings) GetSpeechSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"language": s.SpeechLanguage(),
	})
}

// UpdateSpeechSettings updates the recognition language at runtime
// PUT /api/settings/speech
func (s *RuntimeSettings) UpdateSpeechSettings(c *gin.Context) {
	var req UpdateSpeechSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lang := strings.TrimSpace(req.Language)
	if !validLanguageTag(lang) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language must look like ru-RU"})
		return
	}
	s.SetSpeechLanguage(lang)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Speech settings updated successfully",
		"language": lang,
	})
}

// validLanguageTag accepts well-formed BCP 47 tags with known subtags, such as
// "ru", "ru-RU" or "cmn-Hans-CN".
func validLanguageTag(tag string) bool {
	// language.Parse also accepts "_" as a separator; the speech service does not.
	if tag == "" || strings.ContainsRune(tag, '_') {
		return false
	}
	_, err := language.Parse(tag)
	return err == nil
}
