package handler

import (
	"context"
	"sync"
	"time"

	"blocus/internal/domain"
	"blocus/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot           *tele.Bot
	cardService   *service.CardService
	reviewService *service.ReviewService
	statsService  *service.StatsService
	logger        *zap.Logger
	storeTimeout  time.Duration

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Review sessions in progress, one per user
	sessions   map[int64]*domain.Session
	sessionMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	cardService *service.CardService,
	reviewService *service.ReviewService,
	statsService *service.StatsService,
	storeTimeout time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		cardService:   cardService,
		reviewService: reviewService,
		statsService:  statsService,
		logger:        logger,
		storeTimeout:  storeTimeout,
		states:        make(map[int64]*domain.StateData),
		sessions:      make(map[int64]*domain.Session),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/review", h.handleReview)
	h.bot.Handle("/add", h.handleAddCard)
	h.bot.Handle("/cards", h.handleMyCards)
	h.bot.Handle("/decks", h.handleDecks)
	h.bot.Handle("/history", h.handleHistory)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnReview, h.handleReview)
	h.bot.Handle(&btnAddCard, h.handleAddCard)
	h.bot.Handle(&btnMyCards, h.handleMyCards)
	h.bot.Handle(&btnDecks, h.handleDecks)
	h.bot.Handle(&btnHistory, h.handleHistory)
	h.bot.Handle(&btnReveal, h.handleReveal)
	h.bot.Handle(&btnFinish, h.handleFinish)
	h.bot.Handle(&btnAbort, h.handleAbort)
	h.bot.Handle(&btnSkipCategory, h.handleSkipCategory)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnBack, h.handleStart)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Buttons carrying a payload
	h.bot.Handle(&tele.Btn{Unique: uniqueRate}, h.handleRate)
	h.bot.Handle(&tele.Btn{Unique: uniqueDelete}, h.handleDelete)
	h.bot.Handle(&tele.Btn{Unique: uniqueCardsPage}, h.handleCardsPage)
	h.bot.Handle(&tele.Btn{Unique: uniqueHistoryPage}, h.handleHistoryPage)

	// Generic callback handler for anything left over
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

func (h *Handler) getSession(userID int64) *domain.Session {
	h.sessionMux.RLock()
	defer h.sessionMux.RUnlock()
	return h.sessions[userID]
}

func (h *Handler) setSession(userID int64, session *domain.Session) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	if session == nil {
		delete(h.sessions, userID)
		return
	}
	h.sessions[userID] = session
}

// storeContext bounds a single call to the store
func (h *Handler) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.storeTimeout)
}

const (
	uniqueRate        = "rate"
	uniqueDelete      = "delete"
	uniqueCardsPage   = "cards_page"
	uniqueHistoryPage = "history_page"
)

// Inline keyboard buttons
var (
	btnReview = tele.Btn{
		Unique: "review",
		Text:   "🧠 Réviser",
	}
	btnAddCard = tele.Btn{
		Unique: "add_card",
		Text:   "➕ Ajouter une carte",
	}
	btnMyCards = tele.Btn{
		Unique: "my_cards",
		Text:   "🗂 Mes cartes",
	}
	btnDecks = tele.Btn{
		Unique: "decks",
		Text:   "📚 Mes paquets",
	}
	btnHistory = tele.Btn{
		Unique: "history",
		Text:   "📅 Historique",
	}
	btnReveal = tele.Btn{
		Unique: "reveal",
		Text:   "👀 Voir la réponse",
	}
	btnFinish = tele.Btn{
		Unique: "finish",
		Text:   "🏁 Terminer",
	}
	btnAbort = tele.Btn{
		Unique: "abort",
		Text:   "⏹ Arrêter",
	}
	btnSkipCategory = tele.Btn{
		Unique: "skip_category",
		Text:   "⏭ Sans catégorie",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Annuler",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Retour",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Menu principal",
	}
)

// ratingLabels are shown in Button order
var ratingLabels = [...]string{
	domain.ButtonAgain: "😵 À revoir",
	domain.ButtonHard:  "😓 Difficile",
	domain.ButtonGood:  "🙂 Bien",
	domain.ButtonEasy:  "😎 Facile",
}

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnReview),
		menu.Row(btnAddCard),
		menu.Row(btnMyCards, btnDecks),
		menu.Row(btnHistory),
	)
	return menu
}

const mainMenuText = "🏠 Menu principal\n\nChoisis une action :"
