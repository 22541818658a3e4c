package handler

type ThreadSummaryResponse struct {
	Summary string `json:"summary"`
}
