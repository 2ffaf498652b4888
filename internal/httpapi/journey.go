package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/openmind/internal/journey"
)

type startRequest struct {
	Interests []string `json:"interests" binding:"required"`
}

type quizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

type advanceResponse struct {
	Streak    int            `json:"streak"`
	Points    int            `json:"points"`
	Milestone *milestoneView `json:"milestone,omitempty"`
	State     *stateView     `json:"state"`
}

type quizResponse struct {
	Score     float64 `json:"score"`
	Correct   int     `json:"correct"`
	Total     int     `json:"total"`
	Points    int     `json:"points"`
	Celebrate bool    `json:"celebrate"`
	// Persisted is true when the caller asked to wait and the write landed.
	Persisted bool       `json:"persisted"`
	State     *stateView `json:"state"`
}

// withSession runs fn holding the caller's session.
func (s *Server) withSession(c *gin.Context, fn func(*journey.Session) error) {
	sess, release, err := s.sessions.acquire(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	defer release()
	if err := fn(sess); err != nil {
		writeError(c, err)
	}
}

func (s *Server) respondState(c *gin.Context, status int, sess *journey.Session) error {
	v, err := newStateView(sess)
	if err != nil {
		return err
	}
	c.JSON(status, v)
	return nil
}

func (s *Server) getJourney(c *gin.Context) {
	s.withSession(c, func(sess *journey.Session) error {
		return s.respondState(c, http.StatusOK, sess)
	})
}

func (s *Server) startJourney(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s.withSession(c, func(sess *journey.Session) error {
		if err := s.orch.StartJourney(c.Request.Context(), sess, req.Interests); err != nil {
			return err
		}
		return s.respondState(c, http.StatusCreated, sess)
	})
}

func (s *Server) startSubject(c *gin.Context) {
	s.withSession(c, func(sess *journey.Session) error {
		if err := s.orch.StartSubject(c.Request.Context(), sess, c.Param("stream"), c.Param("subject")); err != nil {
			return err
		}
		return s.respondState(c, http.StatusCreated, sess)
	})
}

func (s *Server) advance(c *gin.Context) {
	s.withSession(c, func(sess *journey.Session) error {
		res, err := s.orch.AdvanceToNextDay(c.Request.Context(), sess)
		if err != nil {
			return err
		}
		state, err := newStateView(sess)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, advanceResponse{
			Streak:    res.Streak,
			Points:    res.Points,
			Milestone: newMilestoneView(res.Milestone),
			State:     state,
		})
		return nil
	})
}

func (s *Server) submitQuiz(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	wait, _ := strconv.ParseBool(c.Query("wait"))

	s.withSession(c, func(sess *journey.Session) error {
		ctx := c.Request.Context()
		res, err := s.orch.SubmitQuiz(ctx, sess, req.Answers)
		if err != nil {
			return err
		}
		if wait {
			if err := res.Write.Wait(ctx); err != nil {
				return err
			}
		}
		state, err := newStateView(sess)
		if err != nil {
			return err
		}
		c.JSON(http.StatusOK, quizResponse{
			Score:     res.Score,
			Correct:   res.Correct,
			Total:     res.Total,
			Points:    res.Points,
			Celebrate: res.Celebrate,
			Persisted: wait,
			State:     state,
		})
		return nil
	})
}

func (s *Server) listDays(c *gin.Context) {
	s.withSession(c, func(sess *journey.Session) error {
		days, err := s.orch.Days(c.Request.Context(), sess)
		if err != nil {
			return err
		}
		out := make([]*topicView, 0, len(days))
		for i := range days {
			v, err := newTopicView(&days[i])
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		c.JSON(http.StatusOK, gin.H{"days": out})
		return nil
	})
}

func (s *Server) listJourneys(c *gin.Context) {
	history, err := s.orch.History(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]*journeyView, 0, len(history))
	for i := range history {
		out = append(out, newJourneyView(&history[i]))
	}
	c.JSON(http.StatusOK, gin.H{"journeys": out})
}

func (s *Server) selectJourney(c *gin.Context) {
	s.withSession(c, func(sess *journey.Session) error {
		if err := s.orch.SelectJourney(c.Request.Context(), sess, c.Param("id")); err != nil {
			return err
		}
		return s.respondState(c, http.StatusOK, sess)
	})
}
