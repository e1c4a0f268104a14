package handler

import (
	"strings"
	"testing"

	"blocus/internal/domain"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v3"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "short", input: "atome", limit: 10, expected: "atome"},
		{name: "exact", input: "abcde", limit: 5, expected: "abcde"},
		{name: "long", input: "abcdefgh", limit: 5, expected: "abcd…"},
		{name: "collapses whitespace", input: "a \n b\t c", limit: 10, expected: "a b c"},
		{name: "multibyte", input: "éléphant", limit: 4, expected: "élé…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.input, tt.limit))
		})
	}
}

func TestCardLine(t *testing.T) {
	card := domain.Card{Question: "H2O ?", Answer: "Eau"}
	assert.Equal(t, "H2O ? → Eau", cardLine(card))

	card.Category = "Chimie"
	assert.Equal(t, "H2O ? → Eau [Chimie]", cardLine(card))
}

func TestCardText(t *testing.T) {
	session := &domain.Session{
		State: domain.SessionActive,
		Queue: []domain.Card{
			{ID: "c1", Question: "Capitale de la Belgique ?", Answer: "Bruxelles", Category: "Géo"},
			{ID: "c2", Question: "2+2 ?", Answer: "4"},
		},
	}

	t.Run("hidden answer", func(t *testing.T) {
		text := cardText(session, session.Current())
		assert.Contains(t, text, "Carte 1/2 · Géo")
		assert.Contains(t, text, "Capitale de la Belgique ?")
		assert.NotContains(t, text, "Bruxelles")
	})

	t.Run("revealed answer", func(t *testing.T) {
		session.Revealed = true
		defer func() { session.Revealed = false }()

		text := cardText(session, session.Current())
		assert.Contains(t, text, "Bruxelles")
	})

	t.Run("no category", func(t *testing.T) {
		session.Position = 1
		text := cardText(session, session.Current())
		assert.True(t, strings.HasPrefix(text, "🧠 Carte 2/2\n"))
	})
}

func TestRatingRow(t *testing.T) {
	markup := &tele.ReplyMarkup{}
	row := ratingRow(markup, "card-7")

	assert.Len(t, row, 4)
	for i, btn := range row {
		assert.Equal(t, uniqueRate, btn.Unique)

		q, cardID, err := parseRating(btn.Data)
		assert.NoError(t, err)
		assert.Equal(t, "card-7", cardID)

		expected, _ := domain.Button(i).Quality()
		assert.Equal(t, expected, q)
	}
}

func TestPageRow(t *testing.T) {
	markup := &tele.ReplyMarkup{}

	assert.Empty(t, pageRow(markup, uniqueCardsPage, 1, 1))

	first := pageRow(markup, uniqueCardsPage, 1, 3)
	assert.Len(t, first, 1)
	assert.Equal(t, "2", first[0].Data)

	middle := pageRow(markup, uniqueCardsPage, 2, 3)
	assert.Len(t, middle, 2)
	assert.Equal(t, "1", middle[0].Data)
	assert.Equal(t, "3", middle[1].Data)

	last := pageRow(markup, uniqueHistoryPage, 3, 3)
	assert.Len(t, last, 1)
	assert.Equal(t, "2", last[0].Data)
	assert.Equal(t, uniqueHistoryPage, last[0].Unique)
}

func TestStreakText(t *testing.T) {
	assert.Equal(t, "Pas encore de série en cours.", streakText(0))
	assert.Equal(t, "🔥 Série : 1 jour", streakText(1))
	assert.Equal(t, "🔥 Série : 5 jours", streakText(5))
}
