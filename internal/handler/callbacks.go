package handler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"blocus/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseRating splits a rating payload "<button>|<card id>"
func parseRating(data string) (domain.Quality, string, error) {
	parts := strings.SplitN(cleanCallbackData(data), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", fmt.Errorf("malformed rating payload %q", data)
	}

	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", fmt.Errorf("malformed rating payload %q: %w", data, err)
	}

	q, err := domain.Button(n).Quality()
	if err != nil {
		return 0, "", err
	}
	return q, parts[1], nil
}

// parsePage reads a page number payload, defaulting to 1
func parsePage(data string) int {
	page, err := strconv.Atoi(cleanCallbackData(data))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64, resp ...*tele.CallbackResponse) error {
	if err == nil {
		return nil
	}

	// Same content as before, usually a double tap
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond(resp...)
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(resp...); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// render edits the message behind a callback, or sends a new one for commands.
// resp is used to answer the callback, for example with a toast.
func (h *Handler) render(c tele.Context, text string, markup *tele.ReplyMarkup, resp ...*tele.CallbackResponse) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID, resp...); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond(resp...)
}

// notify reports a failure without changing the screen
func notify(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}

// handleCallback handles callbacks that no registered button claimed
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch callback.Unique {
	case uniqueRate:
		return h.handleRate(c)
	case uniqueDelete:
		return h.handleDelete(c)
	case uniqueCardsPage:
		return h.handleCardsPage(c)
	case uniqueHistoryPage:
		return h.handleHistoryPage(c)
	case "back", "main_menu":
		return h.handleStart(c)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
