package tui

import (
	"github.com/google/uuid"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
)

// analysisResultMsg carries a classified analysis outcome back into the
// update loop. The token identifies which session produced it; results from
// superseded sessions are dropped on arrival.
type analysisResultMsg struct {
	state model.ViewState
	token uuid.UUID
}
