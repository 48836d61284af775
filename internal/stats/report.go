package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/jazzquiz/internal/model"
	"github.com/verte-zerg/jazzquiz/internal/store"
)

// curveKeys is the number of most practiced keys given their own curve.
const curveKeys = 3

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	KeyAggsAll       []model.KeyAggregate
	KeyAggsWindow    []model.KeyAggregate
	CurveKeys        []string
	PerSession       map[int64]map[string]model.KeyAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	keyAggsAll, err := st.ListKeyAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	keyAggsWindow, err := st.ListKeyAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}
	curve := TopKeysByFrequency(keyAggsAll, curveKeys)
	perSession, err := st.ListKeyStatsForSessions(ctx, allIDs, curve)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		KeyAggsAll:       keyAggsAll,
		KeyAggsWindow:    keyAggsWindow,
		CurveKeys:        curve,
		PerSession:       perSession,
	}, nil
}

// Render writes the full report.
func (r Report) Render(w io.Writer, cfg model.StatsConfig, totalWidth int) error {
	if err := RenderSummary(w, r.Sessions); err != nil {
		return err
	}
	if len(r.Sessions) == 0 {
		return nil
	}
	if err := RenderCurves(w, r.Sessions, cfg.CurveWindow, totalWidth); err != nil {
		return err
	}
	if err := RenderKeyTable(w, r.KeyAggsWindow); err != nil {
		return err
	}
	return RenderKeyCurves(w, r.Sessions, r.PerSession, r.CurveKeys, cfg.CurveWindow, totalWidth)
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
