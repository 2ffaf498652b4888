package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/openmind/internal/catalog"
	"github.com/abhisek/openmind/internal/gamification"
	"github.com/abhisek/openmind/internal/store"
)

const (
	defaultBoardLimit = 10
	maxBoardLimit     = 100
)

type profileRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) getProfile(c *gin.Context) {
	p, err := s.store.Profiles().Get(c.Request.Context(), userID(c))
	if store.IsNotFound(err) {
		p, err = &store.Profile{UserID: userID(c)}, nil
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileView(p))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		abortError(c, http.StatusBadRequest, "invalid_request", "name must not be blank")
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)
	now := s.now().UTC()
	var p *store.Profile
	err := s.store.WithTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.Profiles().Ensure(ctx, uid, now); err != nil {
			return err
		}
		if err := tx.Profiles().SetName(ctx, uid, name, now); err != nil {
			return err
		}
		var err error
		p, err = tx.Profiles().Get(ctx, uid)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileView(p))
}

// leaderboard ranks a journey title's board by streak, or all profiles by
// points when no journey is given.
func (s *Server) leaderboard(c *gin.Context) {
	limit := defaultBoardLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			abortError(c, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = min(n, maxBoardLimit)
	}

	ctx := c.Request.Context()
	var out []rankedEntry
	if title := strings.TrimSpace(c.Query("journey")); title != "" {
		entries, err := s.store.Leaderboard().TopForJourney(ctx, title, limit)
		if err != nil {
			writeError(c, err)
			return
		}
		ranks := gamification.Rank(entries, func(e store.LeaderboardEntry) int { return e.Streak })
		for i, e := range entries {
			out = append(out, rankedEntry{Rank: ranks[i], UserID: e.UserID, Name: e.Name, Streak: e.Streak, Points: e.Points})
		}
	} else {
		profiles, err := s.store.Profiles().Top(ctx, limit)
		if err != nil {
			writeError(c, err)
			return
		}
		ranks := gamification.Rank(profiles, func(p store.Profile) int { return p.Points })
		for i, p := range profiles {
			out = append(out, rankedEntry{Rank: ranks[i], UserID: p.UserID, Name: p.Name, Streak: p.Streak, Points: p.Points})
		}
	}
	if out == nil {
		out = []rankedEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (s *Server) listCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"streams": catalog.Streams()})
}
