package atelier

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// chatRequest is the relay's wire contract. Profile fields are optional;
// when a caller omits them the server's own profile supplies the context.
type chatRequest struct {
	Message  string        `json:"message"`
	History  []ChatMessage `json:"history"`
	UserInfo *Profile      `json:"userInfo,omitempty"`
	Projects []Project     `json:"projects,omitempty"`
	Skills   []Skill       `json:"skills,omitempty"`
}

type chatResponse struct {
	Text string `json:"text"`
}

// handleAPIChat proxies a visitor message plus the rolling transcript to the
// generation endpoint. Unlike the content API there are no silent-absent
// semantics here: failures come back as JSON error envelopes the widget
// turns into user-visible text.
func (a *App) handleAPIChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "invalid chat payload"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, apiError{Error: "message is required"})
	}
	if !a.Assistant.Configured() {
		return c.JSON(http.StatusInternalServerError, apiError{Error: "API_KEY not configured on server."})
	}

	profile := a.Profile
	if req.UserInfo != nil {
		profile = *req.UserInfo
	}
	if len(req.Projects) > 0 {
		profile.Projects = req.Projects
	}
	if len(req.Skills) > 0 {
		profile.Skills = req.Skills
	}

	// Some clients append the new user turn to history before sending;
	// drop it so the transcript forwarded upstream carries the turn once.
	history := req.History
	if n := len(history); n > 0 && history[n-1].Role == "user" && history[n-1].Content == req.Message {
		history = history[:n-1]
	}

	text, err := a.Assistant.Generate(c.Request().Context(), profile, req.Message, history)
	if err != nil {
		c.Logger().Errorf("chat relay: %v", err)
		return c.JSON(http.StatusInternalServerError, apiError{Error: "AI Service Error", Details: err.Error()})
	}
	return c.JSON(http.StatusOK, chatResponse{Text: text})
}
