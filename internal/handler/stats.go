package handler

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleHistory shows the streak and the first page of review days
func (h *Handler) handleHistory(c tele.Context) error {
	return h.showHistoryPage(c, 1)
}

// handleHistoryPage handles history navigation
func (h *Handler) handleHistoryPage(c tele.Context) error {
	return h.showHistoryPage(c, parsePage(c.Callback().Data))
}

func (h *Handler) showHistoryPage(c tele.Context, page int) error {
	userID := c.Sender().ID

	ctx, cancel := h.storeContext()
	defer cancel()

	days, totalPages, err := h.statsService.GetHistory(ctx, userID, page)
	if err != nil {
		h.logger.Error("Failed to get history", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "Erreur lors du chargement de l'historique")
	}

	streak, err := h.statsService.Streak(ctx, userID, time.Now())
	if err != nil {
		h.logger.Error("Failed to compute streak", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "Erreur lors du chargement de l'historique")
	}

	markup := &tele.ReplyMarkup{}

	if len(days) == 0 {
		markup.Inline(markup.Row(btnReview), markup.Row(btnBack))
		return h.render(c, "📅 Aucune révision pour l'instant.", markup)
	}

	text := streakText(streak) + "\n\n"
	text += fmt.Sprintf("📅 Historique (page %d/%d) :\n\n", page, totalPages)
	for _, day := range days {
		text += fmt.Sprintf("• %s : %d cartes\n", day.DisplayString(), day.CardsReviewed)
	}

	rows := []tele.Row{}
	if nav := pageRow(markup, uniqueHistoryPage, page, totalPages); len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, markup.Row(btnBack))

	markup.Inline(rows...)
	return h.render(c, text, markup)
}
