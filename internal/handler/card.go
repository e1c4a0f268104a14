package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"blocus/internal/domain"
	"blocus/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingAnswer:
		h.SetState(userID, &domain.StateData{
			State:    domain.StateWaitingCategory,
			Question: state.Question,
			Answer:   text,
		})

		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnSkipCategory), markup.Row(btnCancel))
		return c.Send("📚 Dans quel paquet ? (ex. Chimie)", markup)

	case domain.StateWaitingCategory:
		return h.saveCard(c, state, text)

	case domain.StateReviewing:
		if session := h.getSession(userID); session != nil && session.State == domain.SessionActive {
			return c.Send("Utilise les boutons sous la carte pour répondre 🙂")
		}
		h.ResetState(userID)
		fallthrough

	default:
		// Idle or waiting for a question: the text is the question
		cancelMarkup := &tele.ReplyMarkup{}
		cancelMarkup.Inline(cancelMarkup.Row(btnCancel))

		h.SetState(userID, &domain.StateData{
			State:    domain.StateWaitingAnswer,
			Question: text,
		})

		return c.Send("✍️ Et la réponse ?", cancelMarkup)
	}
}

// handleAddCard starts the add-card flow
func (h *Handler) handleAddCard(c tele.Context) error {
	userID := c.Sender().ID

	if session := h.getSession(userID); session != nil {
		return notify(c, "Termine ou arrête d'abord ta révision.")
	}

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingQuestion})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return h.render(c, "❓ Envoie la question de ta nouvelle carte.", markup)
}

// handleSkipCategory saves the pending card without a category
func (h *Handler) handleSkipCategory(c tele.Context) error {
	state := h.GetState(c.Sender().ID)
	if state.State != domain.StateWaitingCategory {
		return c.Respond()
	}
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}
	return h.saveCard(c, state, "")
}

// saveCard creates the card collected by the add-card flow
func (h *Handler) saveCard(c tele.Context, state *domain.StateData, category string) error {
	userID := c.Sender().ID

	ctx, cancel := h.storeContext()
	defer cancel()

	_, err := h.cardService.CreateCard(ctx, service.CreateCardInput{
		UserID:   userID,
		Question: state.Question,
		Answer:   state.Answer,
		Category: category,
	})
	if errors.Is(err, domain.ErrValidation) {
		h.logger.Info("Card rejected", zap.Int64("user_id", userID), zap.Error(err))
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingQuestion})
		return c.Send("⚠️ Carte invalide : la question et la réponse sont obligatoires et pas trop longues.\n\nEnvoie une nouvelle question ou reviens au /start")
	}
	if err != nil {
		h.logger.Error("Failed to save card", zap.Int64("user_id", userID), zap.Error(err))
		// State is kept so that sending the category again retries
		return c.Send("Impossible d'enregistrer la carte. Renvoie la catégorie pour réessayer.")
	}

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingQuestion})

	return c.Send("✅ Carte ajoutée !\n\nEnvoie la question suivante ou reviens au /start")
}

// handleMyCards shows the first page of the user's cards
func (h *Handler) handleMyCards(c tele.Context) error {
	return h.showCardsPage(c, 1)
}

// handleCardsPage handles card list navigation
func (h *Handler) handleCardsPage(c tele.Context) error {
	return h.showCardsPage(c, parsePage(c.Callback().Data))
}

func (h *Handler) showCardsPage(c tele.Context, page int) error {
	userID := c.Sender().ID

	ctx, cancel := h.storeContext()
	defer cancel()

	cards, totalPages, err := h.cardService.ListCards(ctx, userID, page)
	if err != nil {
		h.logger.Error("Failed to list cards", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "Erreur lors du chargement des cartes")
	}

	if len(cards) == 0 && page == 1 {
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnAddCard), markup.Row(btnBack))
		return h.render(c, "Tu n'as pas encore de cartes.", markup)
	}

	text := fmt.Sprintf("🗂 Tes cartes (page %d/%d) :\n\n", page, totalPages)
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	deleteRow := tele.Row{}

	for i, card := range cards {
		n := (page-1)*5 + i + 1
		text += fmt.Sprintf("%d. %s\n", n, cardLine(card))
		deleteRow = append(deleteRow, markup.Data(fmt.Sprintf("🗑 %d", n), uniqueDelete, card.ID))
	}
	if len(deleteRow) > 0 {
		rows = append(rows, deleteRow)
	}

	if nav := pageRow(markup, uniqueCardsPage, page, totalPages); len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, markup.Row(btnBack))

	markup.Inline(rows...)
	return h.render(c, text, markup)
}

// handleDelete deletes a card from the list
func (h *Handler) handleDelete(c tele.Context) error {
	userID := c.Sender().ID
	cardID := cleanCallbackData(c.Callback().Data)

	if session := h.getSession(userID); session != nil {
		return notify(c, "Impossible de supprimer une carte pendant une révision.")
	}

	ctx, cancel := h.storeContext()
	defer cancel()

	err := h.cardService.DeleteCard(ctx, userID, cardID)
	switch {
	case errors.Is(err, domain.ErrCardNotFound):
		return c.Respond(&tele.CallbackResponse{Text: "Carte déjà supprimée"})
	case err != nil:
		h.logger.Error("Failed to delete card",
			zap.Int64("user_id", userID),
			zap.String("card_id", cardID),
			zap.Error(err),
		)
		return notify(c, "Échec de la suppression, réessaie.")
	}

	h.logger.Info("Card deleted", zap.Int64("user_id", userID), zap.String("card_id", cardID))
	return h.showCardsPage(c, 1)
}

// handleDecks shows the user's categories
func (h *Handler) handleDecks(c tele.Context) error {
	userID := c.Sender().ID

	ctx, cancel := h.storeContext()
	defer cancel()

	decks, err := h.cardService.GetDecks(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to get decks", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "Erreur lors du chargement des paquets")
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnReview), markup.Row(btnBack))

	if len(decks) == 0 {
		return h.render(c, "Tu n'as pas encore de paquets.", markup)
	}

	text := "📚 Tes paquets :\n\n"
	for _, deck := range decks {
		text += fmt.Sprintf("• %s : %d cartes, %d à réviser\n", deck.DisplayName(), deck.Total, deck.Due)
	}

	return h.render(c, text, markup)
}

// pageRow builds the previous/next navigation row
func pageRow(markup *tele.ReplyMarkup, unique string, page, totalPages int) tele.Row {
	row := tele.Row{}
	if totalPages <= 1 {
		return row
	}
	if page > 1 {
		row = append(row, markup.Data("⬅️", unique, fmt.Sprint(page-1)))
	}
	if page < totalPages {
		row = append(row, markup.Data("➡️", unique, fmt.Sprint(page+1)))
	}
	return row
}

// cardLine renders a card as a single list entry
func cardLine(card domain.Card) string {
	line := truncate(card.Question, 60) + " → " + truncate(card.Answer, 40)
	if card.Category != "" {
		line += " [" + card.Category + "]"
	}
	return line
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
