// Package http provides the ask endpoint transport
package http

import (
	stdhttp "net/http"

	"vidtally/internal/modkit/httpkit"
	"vidtally/internal/services/answer/domain"
)

// AskRequest is the question payload
// swagger:model
type AskRequest struct {
	Question string `json:"question" validate:"required,notblank,max=2000" example:"сколько всего просмотров?"`
}

// AskResponse carries the single numeric answer
// swagger:model
type AskResponse struct {
	Answer int64 `json:"answer" example:"42"`
}

// Register mounts the ask routes
func Register(r httpkit.Router, ask domain.AskPort) {
	h := &handlers{ask: ask}
	httpkit.PostJSON[AskRequest](r, "/", h.answer)
}

type handlers struct{ ask domain.AskPort }

// swagger:route POST /ask Ask ask
// @Summary Answer an analytics question with one number
// @Tags ask
// @Accept json
// @Produce json
// @Param payload body AskRequest true "Question"
// @Success 200 {object} AskResponse "ok"
// @Failure 400 {object} httpkit.Envelope "blank or malformed question"
// @Router /ask [post]
func (h *handlers) answer(r *stdhttp.Request, in AskRequest) (any, error) {
	return AskResponse{Answer: h.ask.Answer(r.Context(), in.Question)}, nil
}
