package handler

import (
	"testing"
	"time"

	"blocus/internal/domain"
	"blocus/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestHandler() *Handler {
	return NewHandler(nil, nil, nil, nil, time.Second, testutil.NewTestLogger())
}

func TestHandler_State(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, domain.StateIdle, h.GetState(1).State)

	h.SetState(1, &domain.StateData{State: domain.StateWaitingAnswer, Question: "H2O ?"})
	state := h.GetState(1)
	assert.Equal(t, domain.StateWaitingAnswer, state.State)
	assert.Equal(t, "H2O ?", state.Question)
	assert.Equal(t, domain.StateIdle, h.GetState(2).State)

	h.ResetState(1)
	assert.Equal(t, domain.StateIdle, h.GetState(1).State)
}

func TestHandler_Sessions(t *testing.T) {
	h := newTestHandler()

	assert.Nil(t, h.getSession(1))

	session := &domain.Session{UserID: 1, State: domain.SessionActive}
	h.setSession(1, session)
	assert.Same(t, session, h.getSession(1))
	assert.Nil(t, h.getSession(2))

	h.setSession(1, nil)
	assert.Nil(t, h.getSession(1))
}

func TestHandler_StoreContext(t *testing.T) {
	h := newTestHandler()

	ctx, cancel := h.storeContext()
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
}
