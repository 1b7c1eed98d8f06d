package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"cardboard/backend/internal/database"
	"cardboard/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// MostPlayedEntry is one row of the most-played leaderboard.
type MostPlayedEntry struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Count        int    `json:"count"`
	TotalMinutes int    `json:"total_minutes"`
}

// MonthCount is one bar of a rolling 12-month chart.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// LabelCount is one label with its usage count.
type LabelCount struct {
	Label string
	Count int
}

// LabelCountList marshals as a JSON object whose keys keep the slice order,
// most used label first. A plain map would come out alphabetical.
type LabelCountList []LabelCount

func (l LabelCountList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(entry.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *LabelCountList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("label counts: expected a JSON object")
	}
	out := LabelCountList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("label counts: expected a string key")
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return err
		}
		out = append(out, LabelCount{Label: key, Count: count})
	}
	*l = out
	return nil
}

// RecentSessionEntry is one row of the recent-plays feed.
type RecentSessionEntry struct {
	GameID          uint    `json:"game_id"`
	GameName        string  `json:"game_name"`
	PlayedAt        string  `json:"played_at"`
	PlayerCount     *int    `json:"player_count"`
	DurationMinutes *int    `json:"duration_minutes"`
}

// StatsResponse is the aggregate dashboard, computed fresh on every request.
type StatsResponse struct {
	TotalGames          int                  `json:"total_games"`
	ByStatus            map[string]int       `json:"by_status"`
	TotalSessions       int                  `json:"total_sessions"`
	TotalHours          float64              `json:"total_hours"`
	AvgSessionMinutes   float64              `json:"avg_session_minutes"`
	MostPlayed          []MostPlayedEntry    `json:"most_played"`
	NeverPlayedCount    int                  `json:"never_played_count"`
	AvgRating           *float64             `json:"avg_rating"`
	TotalSpent          *float64             `json:"total_spent"`
	LabelCounts         LabelCountList       `json:"label_counts"`
	RatingsDistribution map[string]int       `json:"ratings_distribution"`
	AddedByMonth        []MonthCount         `json:"added_by_month"`
	SessionsByMonth     []MonthCount         `json:"sessions_by_month"`
	RecentSessions      []RecentSessionEntry `json:"recent_sessions"`
}

// endregion

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

const monthLayout = "Jan 2006"

// monthKeys returns the last 12 month labels, oldest first.
func monthKeys(now time.Time) []string {
	keys := make([]string, 0, 12)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 11; i >= 0; i-- {
		keys = append(keys, first.AddDate(0, -i, 0).Format(monthLayout))
	}
	return keys
}

// GetStats godoc
// @Summary      Collection statistics
// @Description  Aggregates over the whole collection: counts, play time, ratings, spend, label usage and rolling 12-month activity.
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatsResponse
// @Router       /stats [get]
func GetStats(c *gin.Context) {
	db := database.DB

	// Game counts by status
	var statusRows []struct {
		Status string
		Count  int
	}
	db.Model(&models.Game{}).Select("status, COUNT(id) AS count").Group("status").Scan(&statusRows)

	byStatus := map[string]int{"owned": 0, "wishlist": 0, "sold": 0}
	totalGames := 0
	for _, row := range statusRows {
		key := row.Status
		if key == "" {
			key = "owned"
		}
		byStatus[key] += row.Count
		totalGames += row.Count
	}

	// Session aggregates
	var sessionAgg struct {
		Count   int
		Minutes int
	}
	db.Model(&models.PlaySession{}).
		Select("COUNT(id) AS count, COALESCE(SUM(duration_minutes), 0) AS minutes").
		Scan(&sessionAgg)

	totalHours := round1(float64(sessionAgg.Minutes) / 60)
	avgSessionMinutes := 0.0
	if sessionAgg.Count > 0 {
		avgSessionMinutes = round1(float64(sessionAgg.Minutes) / float64(sessionAgg.Count))
	}

	// Most played (top 5 by session count)
	var mostPlayedRows []struct {
		GameID       uint
		Name         string
		Count        int
		TotalMinutes int
	}
	db.Model(&models.PlaySession{}).
		Select("play_sessions.game_id, games.name, COUNT(play_sessions.id) AS count, COALESCE(SUM(play_sessions.duration_minutes), 0) AS total_minutes").
		Joins("JOIN games ON games.id = play_sessions.game_id").
		Group("play_sessions.game_id, games.name").
		Order("count DESC").
		Limit(5).
		Scan(&mostPlayedRows)

	mostPlayed := make([]MostPlayedEntry, 0, len(mostPlayedRows))
	for _, row := range mostPlayedRows {
		mostPlayed = append(mostPlayed, MostPlayedEntry{
			ID:           row.GameID,
			Name:         row.Name,
			Count:        row.Count,
			TotalMinutes: row.TotalMinutes,
		})
	}

	// Never played
	var neverPlayed int64
	db.Model(&models.Game{}).
		Where("id NOT IN (?)", db.Model(&models.PlaySession{}).Distinct("game_id")).
		Count(&neverPlayed)

	// Average rating
	var avgRating *float64
	var avgRatingRaw *float64
	db.Model(&models.Game{}).Where("user_rating IS NOT NULL").
		Select("AVG(user_rating)").Scan(&avgRatingRaw)
	if avgRatingRaw != nil {
		r := round1(*avgRatingRaw)
		avgRating = &r
	}

	// Total spent
	var totalSpent *float64
	var totalSpentRaw *float64
	db.Model(&models.Game{}).Where("purchase_price IS NOT NULL").
		Select("SUM(purchase_price)").Scan(&totalSpentRaw)
	if totalSpentRaw != nil {
		s := round2(*totalSpentRaw)
		totalSpent = &s
	}

	// Label counts; the column is a JSON array, parsed app-side
	labelCounts := map[string]int{}
	var labelRows []string
	db.Model(&models.Game{}).Where("labels IS NOT NULL").Pluck("labels", &labelRows)
	for _, raw := range labelRows {
		var labels []string
		if err := json.Unmarshal([]byte(raw), &labels); err != nil {
			continue
		}
		for _, label := range labels {
			if label != "" {
				labelCounts[label]++
			}
		}
	}

	// Sorted most used first; ties break alphabetically
	labels := make(LabelCountList, 0, len(labelCounts))
	for label, count := range labelCounts {
		labels = append(labels, LabelCount{Label: label, Count: count})
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].Count != labels[j].Count {
			return labels[i].Count > labels[j].Count
		}
		return labels[i].Label < labels[j].Label
	})

	// Rating distribution; the en-dash keys are the wire contract
	buckets := map[string]int{"1–2": 0, "3–4": 0, "5–6": 0, "7–8": 0, "9–10": 0}
	var ratings []int
	db.Model(&models.Game{}).Where("user_rating IS NOT NULL").Pluck("user_rating", &ratings)
	for _, r := range ratings {
		switch {
		case r <= 2:
			buckets["1–2"]++
		case r <= 4:
			buckets["3–4"]++
		case r <= 6:
			buckets["5–6"]++
		case r <= 8:
			buckets["7–8"]++
		default:
			buckets["9–10"]++
		}
	}

	// Rolling 12-month activity, zero-filled
	keys := monthKeys(time.Now())
	addedCounts := map[string]int{}
	sessionCounts := map[string]int{}
	for _, k := range keys {
		addedCounts[k] = 0
		sessionCounts[k] = 0
	}

	var addedDates []time.Time
	db.Model(&models.Game{}).Pluck("date_added", &addedDates)
	for _, dt := range addedDates {
		if key := dt.Format(monthLayout); !dt.IsZero() {
			if _, ok := addedCounts[key]; ok {
				addedCounts[key]++
			}
		}
	}

	var playDates []time.Time
	db.Model(&models.PlaySession{}).Pluck("played_at", &playDates)
	for _, dt := range playDates {
		if key := dt.Format(monthLayout); !dt.IsZero() {
			if _, ok := sessionCounts[key]; ok {
				sessionCounts[key]++
			}
		}
	}

	addedByMonth := make([]MonthCount, 0, len(keys))
	sessionsByMonth := make([]MonthCount, 0, len(keys))
	for _, k := range keys {
		addedByMonth = append(addedByMonth, MonthCount{Month: k, Count: addedCounts[k]})
		sessionsByMonth = append(sessionsByMonth, MonthCount{Month: k, Count: sessionCounts[k]})
	}

	// Recent sessions (last 10)
	var recentRows []struct {
		GameID          uint
		Name            string
		PlayedAt        time.Time
		PlayerCount     *int
		DurationMinutes *int
	}
	db.Model(&models.PlaySession{}).
		Select("play_sessions.game_id, games.name, play_sessions.played_at, play_sessions.player_count, play_sessions.duration_minutes").
		Joins("JOIN games ON games.id = play_sessions.game_id").
		Order("play_sessions.played_at DESC, play_sessions.date_added DESC").
		Limit(10).
		Scan(&recentRows)

	recentSessions := make([]RecentSessionEntry, 0, len(recentRows))
	for _, row := range recentRows {
		recentSessions = append(recentSessions, RecentSessionEntry{
			GameID:          row.GameID,
			GameName:        row.Name,
			PlayedAt:        row.PlayedAt.Format(dateLayout),
			PlayerCount:     row.PlayerCount,
			DurationMinutes: row.DurationMinutes,
		})
	}

	log.Printf("Stats computed: %d games, %d sessions", totalGames, sessionAgg.Count)

	c.JSON(http.StatusOK, StatsResponse{
		TotalGames:          totalGames,
		ByStatus:            byStatus,
		TotalSessions:       sessionAgg.Count,
		TotalHours:          totalHours,
		AvgSessionMinutes:   avgSessionMinutes,
		MostPlayed:          mostPlayed,
		NeverPlayedCount:    int(neverPlayed),
		AvgRating:           avgRating,
		TotalSpent:          totalSpent,
		LabelCounts:         labels,
		RatingsDistribution: buckets,
		AddedByMonth:        addedByMonth,
		SessionsByMonth:     sessionsByMonth,
		RecentSessions:      recentSessions,
	})
}
