// internal/handlers/statistics_handlers.go
package handlers

import (
	"net/http"
)

type dailyCounters struct {
	CreatedComments int `json:"created_comments"`
	BlockedComments int `json:"blocked_comments"`
}

type statisticsResponse struct {
	Items []map[string]dailyCounters `json:"items"`
}

// HandleCommentsDailyBreakdown returns per-date counters for the inclusive
// date range. Days without activity are absent from the result.
func (s *Server) HandleCommentsDailyBreakdown(w http.ResponseWriter, r *http.Request) {
	dateFrom := r.URL.Query().Get("date_from")
	dateTo := r.URL.Query().Get("date_to")

	records, err := s.Statistics.Range(r.Context(), dateFrom, dateTo)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := statisticsResponse{Items: make([]map[string]dailyCounters, 0, len(records))}
	for _, record := range records {
		resp.Items = append(resp.Items, map[string]dailyCounters{
			record.Date: {
				CreatedComments: record.CreatedComments,
				BlockedComments: record.BlockedComments,
			},
		})
	}
	respondJSON(w, http.StatusOK, resp)
}
