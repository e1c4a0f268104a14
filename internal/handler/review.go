package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"blocus/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleReview starts a review session, or resumes the one in progress
func (h *Handler) handleReview(c tele.Context) error {
	userID := c.Sender().ID

	if session := h.getSession(userID); session != nil {
		return h.showSession(c, session)
	}

	ctx, cancel := h.storeContext()
	defer cancel()

	session, err := h.reviewService.StartSession(ctx, userID, time.Now())
	if errors.Is(err, domain.ErrNothingDue) {
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnAddCard), markup.Row(btnBack))
		return h.render(c, "🎉 Rien à réviser pour le moment. Reviens plus tard !", markup)
	}
	if err != nil {
		return notify(c, "Impossible de charger tes cartes, réessaie.")
	}

	h.setSession(userID, session)
	h.SetState(userID, &domain.StateData{State: domain.StateReviewing})

	return h.showSession(c, session)
}

// handleReveal shows the answer of the current card
func (h *Handler) handleReveal(c tele.Context) error {
	session := h.getSession(c.Sender().ID)
	if err := h.reviewService.Reveal(session); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Aucune révision en cours"})
	}
	return h.showSession(c, session)
}

// handleRate grades the current card
func (h *Handler) handleRate(c tele.Context) error {
	userID := c.Sender().ID

	q, cardID, err := parseRating(c.Callback().Data)
	if err != nil {
		h.logger.Warn("Invalid rating callback",
			zap.Int64("user_id", userID),
			zap.String("data", c.Callback().Data),
			zap.Error(err),
		)
		return c.Respond()
	}

	session := h.getSession(userID)

	ctx, cancel := h.storeContext()
	defer cancel()

	_, err = h.reviewService.Rate(ctx, session, cardID, q, time.Now())
	switch {
	case errors.Is(err, domain.ErrStaleRating), errors.Is(err, domain.ErrSessionNotActive):
		// Old keyboard or double tap
		return c.Respond()
	case err != nil:
		return notify(c, "Échec de l'enregistrement, appuie à nouveau pour réessayer.")
	}

	return h.showSession(c, session)
}

// handleFinish logs a completed session and shows the streak
func (h *Handler) handleFinish(c tele.Context) error {
	userID := c.Sender().ID
	session := h.getSession(userID)

	ctx, cancel := h.storeContext()
	defer cancel()

	now := time.Now()
	reviewed := 0
	if session != nil {
		reviewed = session.Reviewed
	}

	err := h.reviewService.Finish(ctx, session, now)
	if errors.Is(err, domain.ErrSessionNotDone) {
		return c.Respond(&tele.CallbackResponse{Text: "Aucune révision à terminer"})
	}
	if err != nil {
		return notify(c, "Impossible d'enregistrer la séance, réessaie.")
	}

	h.setSession(userID, nil)
	h.ResetState(userID)

	text := fmt.Sprintf("🏁 Séance terminée : %d cartes révisées.", reviewed)

	streak, err := h.statsService.Streak(ctx, userID, now)
	if err != nil {
		h.logger.Warn("Failed to compute streak", zap.Int64("user_id", userID), zap.Error(err))
	} else {
		text += "\n" + streakText(streak)
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnHistory), markup.Row(btnMainMenu))
	return h.render(c, text, markup)
}

// handleAbort stops the session without logging it
func (h *Handler) handleAbort(c tele.Context) error {
	userID := c.Sender().ID
	session := h.getSession(userID)

	h.reviewService.Abort(session)
	h.setSession(userID, nil)
	h.ResetState(userID)

	text := "⏹ Révision arrêtée."
	if session != nil && session.Reviewed > 0 {
		text += fmt.Sprintf(" Les %d cartes notées sont enregistrées.", session.Reviewed)
	}
	return h.render(c, text, mainMenuMarkup())
}

// showSession renders the screen matching the session state
func (h *Handler) showSession(c tele.Context, session *domain.Session) error {
	markup := &tele.ReplyMarkup{}

	if session.State == domain.SessionComplete {
		markup.Inline(markup.Row(btnFinish))
		return h.render(c, fmt.Sprintf("✅ Toutes les cartes sont passées (%d).", session.Reviewed), markup)
	}

	card := session.Current()
	if card == nil {
		h.setSession(session.UserID, nil)
		h.ResetState(session.UserID)
		return h.render(c, mainMenuText, mainMenuMarkup())
	}

	if !session.Revealed {
		markup.Inline(markup.Row(btnReveal), markup.Row(btnAbort))
	} else {
		markup.Inline(ratingRow(markup, card.ID), markup.Row(btnAbort))
	}
	return h.render(c, cardText(session, card), markup)
}

// ratingRow builds the four grading buttons for a card
func ratingRow(markup *tele.ReplyMarkup, cardID string) tele.Row {
	row := make(tele.Row, 0, len(ratingLabels))
	for b, label := range ratingLabels {
		row = append(row, markup.Data(label, uniqueRate, fmt.Sprintf("%d|%s", b, cardID)))
	}
	return row
}

// cardText renders the presented card with the session progress
func cardText(session *domain.Session, card *domain.Card) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🧠 Carte %d/%d", session.Position+1, len(session.Queue))
	if card.Category != "" {
		fmt.Fprintf(&sb, " · %s", card.Category)
	}
	fmt.Fprintf(&sb, "\n\n❓ %s", card.Question)

	if session.Revealed {
		fmt.Fprintf(&sb, "\n\n💡 %s\n\nComment ça s'est passé ?", card.Answer)
	}
	return sb.String()
}

func streakText(streak int) string {
	switch streak {
	case 0:
		return "Pas encore de série en cours."
	case 1:
		return "🔥 Série : 1 jour"
	}
	return fmt.Sprintf("🔥 Série : %d jours", streak)
}
