package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/talentbridge/matchengine/internal/notify"
	"github.com/talentbridge/matchengine/internal/ranking"
	"github.com/talentbridge/matchengine/internal/store"
	"github.com/talentbridge/matchengine/internal/types"
)

// pathUUID parses one path parameter as a UUID
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}

// queryInt parses an optional integer query parameter, falling back
// to def when absent or malformed
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// writeServiceError maps store errors onto HTTP statuses
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}

// handleRankJob ranks the candidate pool for one job and persists the
// result set
func (s *Server) handleRankJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	opts := ranking.Options{
		MinScore: queryInt(r, "min_score", 0),
		Limit:    queryInt(r, "limit", 0),
		Persist:  r.URL.Query().Get("persist") != "false",
	}

	ranked, err := s.ranker.RankCandidates(r.Context(), jobID, opts)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":     jobID,
		"candidates": ranked,
	})
}

// handleCompare compares a small group of candidates against one job
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var body struct {
		CandidateIDs []uuid.UUID `json:"candidate_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cmp, err := s.ranker.Compare(r.Context(), jobID, body.CandidateIDs)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, err.Error())
		} else {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	s.jsonResponse(w, http.StatusOK, cmp)
}

// handleAnalysis returns the strength/weakness report for one
// candidate against one job
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "job_id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}
	candidateID, err := pathUUID(r, "candidate_id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate id")
		return
	}

	report, err := s.ranker.AnalyzeCandidate(r.Context(), candidateID, jobID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleDemandProfile returns a company's mined demand profile
func (s *Server) handleDemandProfile(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid company id")
		return
	}

	profile, err := s.miner.DemandProfile(r.Context(), companyID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleSuggestions mines and persists proactive candidate
// suggestions for a company
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid company id")
		return
	}

	profile, suggestions, err := s.miner.SuggestCandidates(r.Context(), companyID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"company_id":     companyID,
		"demand_profile": profile,
		"suggestions":    suggestions,
	})
}

// handleRecommendations returns a company's active stored
// recommendations
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid company id")
		return
	}

	recs, err := s.ranker.StoredRecommendations(r.Context(), companyID,
		queryInt(r, "min_score", 0), queryInt(r, "limit", 0))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"company_id":      companyID,
		"recommendations": recs,
	})
}

// handleNotify dispatches job-match notifications for one posting
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	opts := notify.Options{
		MinScore:   queryInt(r, "min_score", 0),
		MaxNotices: queryInt(r, "max_notices", 0),
	}
	results, err := s.matcher.NotifyMatching(r.Context(), jobID, opts)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":  jobID,
		"results": results,
	})
}

// handleAccuracy measures one user's recommendation accuracy
func (s *Server) handleAccuracy(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}

	window := time.Duration(queryInt(r, "window_days", 0)) * 24 * time.Hour
	m, err := s.tracker.Measure(r.Context(), userID, itemTypeParam(r), window)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, m)
}

// handleAccuracyTrend samples one user's accuracy trend
func (s *Server) handleAccuracyTrend(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid user id")
		return
	}

	report, err := s.tracker.Trend(r.Context(), userID, itemTypeParam(r), nil)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleSystemAccuracy aggregates accuracy over the most active users
func (s *Server) handleSystemAccuracy(w http.ResponseWriter, r *http.Request) {
	window := time.Duration(queryInt(r, "window_days", 0)) * 24 * time.Hour
	sys, err := s.tracker.System(r.Context(), itemTypeParam(r), window, queryInt(r, "max_users", 0))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sys)
}

func itemTypeParam(r *http.Request) string {
	if it := r.URL.Query().Get("item_type"); it != "" {
		return it
	}
	return types.ItemTypeJob
}
