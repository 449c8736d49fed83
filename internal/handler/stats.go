package handler

import (
	"fmt"
	"strings"

	"vocidrill/internal/domain"
	"vocidrill/internal/service"

	tele "gopkg.in/telebot.v3"
)

const statsPageSize = 10

// handleStats shows the first page of statistics
func (h *Handler) handleStats(c tele.Context) error {
	return h.showStatsPage(c, 1)
}

// showStatsPage renders one page of statistics, weakest pairs first
func (h *Handler) showStatsPage(c tele.Context, page int) error {
	stats := h.quizService.GetStats()
	totals := service.SumTotals(stats)

	items, page, totalPages := statsPage(service.SortByRecency(stats), page)
	text := formatStats(items, totals, page, totalPages)

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	// Add pagination buttons
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("page_%d", page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("page_%d", page+1)))
		}
		rows = append(rows, navRow)
	}

	rows = append(rows, markup.Row(btnLearn), markup.Row(btnBack))
	markup.Inline(rows...)

	return h.editOrSend(c, text, markup)
}

// statsPage returns the entries of page, clamping page into range
func statsPage(stats []domain.PairStats, page int) ([]domain.PairStats, int, int) {
	totalPages := (len(stats) + statsPageSize - 1) / statsPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * statsPageSize
	end := start + statsPageSize
	if end > len(stats) {
		end = len(stats)
	}
	return stats[start:end], page, totalPages
}

func formatStats(items []domain.PairStats, totals service.Totals, page, totalPages int) string {
	if len(items) == 0 {
		return "📊 No words yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Overall %s (%d/%d)\n\n",
		percent(totals.Score()), totals.Correct, totals.Correct+totals.Incorrect)

	for _, st := range items {
		fmt.Fprintf(&b, "%4s (%d/%d) %s → %s\n",
			percent(st.Score), st.Correct, st.Correct+st.Incorrect, st.Word1, st.Word2)
	}

	if totalPages > 1 {
		fmt.Fprintf(&b, "\nPage %d/%d", page, totalPages)
	}
	return b.String()
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
